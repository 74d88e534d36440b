// Package input holds the field rules used by the interactive form before
// values reach the simulator.
package input

import (
	"strconv"
	"strings"
)

// PercentMaxLength is the character limit of a percentage field.
const PercentMaxLength = 3

// NormalizePercentage applies the percentage field rule to an edited value.
// It returns false when the edit must be rejected: empty, longer than three
// characters, or starting with "0". Values not starting with "1" keep at most
// two characters. Values starting with "1" are clamped to "10" or "100" when
// the following digit is not "0".
func NormalizePercentage(v string) (string, bool) {
	if v == "" || len(v) > PercentMaxLength || v[0] == '0' {
		return "", false
	}
	if v[0] != '1' {
		if len(v) > 2 {
			return v[:2], true
		}
		return v, true
	}
	switch {
	case len(v) == 2 && v[1] != '0':
		return "10", true
	case len(v) == 3 && v[2] != '0':
		return "100", true
	}
	return v, true
}

// Truncate cuts v to maxLength bytes. A maxLength of zero or less leaves v
// untouched.
func Truncate(v string, maxLength int) string {
	if maxLength <= 0 || len(v) <= maxLength {
		return v
	}
	return v[:maxLength]
}

// ParseNumber converts a field value to a number. Empty and unparsable
// values become zero.
func ParseNumber(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// ApplyPercentageEdit runs a raw percentage edit through truncation and
// normalization. Rejected edits yield zero.
func ApplyPercentageEdit(v string) float64 {
	n, ok := NormalizePercentage(Truncate(v, PercentMaxLength))
	if !ok {
		return 0
	}
	return ParseNumber(n)
}
