package ulid

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID(t *testing.T) {
	id := NewRunID(time.Now())
	assert.Len(t, id, 26)
	assert.True(t, IsRunID(id))
}

func TestNewRunID_SameMillisecondSorts(t *testing.T) {
	now := time.Now()
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = NewRunID(now)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewRunID_Concurrent(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	now := time.Now()
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewRunID(now)
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 32)
}

func TestRunStarted(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := RunStarted(NewRunID(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))

	_, err = RunStarted("not-a-run-id")
	assert.Error(t, err)
	assert.False(t, IsRunID("not-a-run-id"))
}
