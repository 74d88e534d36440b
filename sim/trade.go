package sim

import (
	"fmt"
	"strings"
)

// Outcome is the result of a single simulated trade.
type Outcome int

const (
	Win Outcome = iota
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ParseOutcome accepts "win" or "loss" in any case.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win":
		return Win, nil
	case "loss":
		return Loss, nil
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

func (o Outcome) MarshalText() ([]byte, error) {
	if o != Win && o != Loss {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Trade is one simulated trade. Balance is the floored account balance after
// the trade's fees were paid.
type Trade struct {
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Balance  int64   `json:"balance" yaml:"balance"`
	FeesPaid float64 `json:"fees_paid" yaml:"fees_paid"`
}
