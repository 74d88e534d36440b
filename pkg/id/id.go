// Package id generates run identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	mono = ulid.Monotonic(rand.New(rand.NewSource(Seed())), 0)
}

// Seed returns a non-zero seed read from crypto/rand, falling back to the
// clock if the system source fails.
func Seed() int64 {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}

// New returns a ULID string for the current time.
//
// ULIDs sort lexicographically by creation time, so journal listings can
// order runs by ID alone.
func New() string {
	return newAt(time.Now())
}

// newAt stamps the ID with t. IDs generated within the same millisecond remain
// increasing.
func newAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// only if the clock goes backwards past the monotonic window or entropy fails
		panic(err)
	}
	return id.String()
}
