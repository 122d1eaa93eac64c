package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropy is shared so IDs minted in the same millisecond still increase.
// ulid.MonotonicEntropy is not safe for concurrent use, hence the lock.
var entropy = struct {
	sync.Mutex
	src *ulid.MonotonicEntropy
}{src: ulid.Monotonic(rand.Reader, 0)}

// New returns a ULID for the current time. Trade and account IDs sort by
// creation time, which matches the journal's chronological listing.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID whose timestamp component is t.
func NewAt(t time.Time) string {
	entropy.Lock()
	defer entropy.Unlock()

	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy.src).String()
}

// Time extracts the creation time encoded in a ULID.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
