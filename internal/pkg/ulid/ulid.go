// Package ulid stamps aggchain-tool runs with sortable identifiers.
package ulid

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// entropy is shared so IDs minted in the same millisecond still sort in order.
var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewRunID returns the identifier of a run started at t.
func NewRunID(t time.Time) string {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// RunStarted returns the start time encoded in a run ID.
func RunStarted(runID string) (time.Time, error) {
	id, err := ulid.ParseStrict(runID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run id %q: %w", runID, err)
	}
	return ulid.Time(id.Time()), nil
}

// IsRunID reports whether s is a well-formed run ID.
func IsRunID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
