package notify_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tiny-panda1966/supportdesk/internal/core/notify"
)

func TestTracker_IncrementAndClear(t *testing.T) {
	tr := notify.NewTracker()

	assert.Equal(t, 1, tr.Increment("1"))
	assert.Equal(t, 2, tr.Increment("2"))
	assert.Equal(t, 3, tr.Increment("1"))
	assert.Equal(t, 2, tr.Count("1"))

	assert.True(t, tr.Clear("1"))
	assert.False(t, tr.Clear("1"))
	assert.Zero(t, tr.Count("1"))
	assert.Equal(t, 1, tr.Total())
	assert.Equal(t, map[string]int{"2": 1}, tr.Snapshot())
}

func TestTracker_SnapshotIsCopy(t *testing.T) {
	tr := notify.NewTracker()
	tr.Increment("1")

	snap := tr.Snapshot()
	snap["1"] = 99

	assert.Equal(t, 1, tr.Count("1"))
}

func TestTracker_TotalEqualsSumOfCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ids := []string{"a", "b", "c", "d"}
	tr := notify.NewTracker()
	expected := map[string]int{}

	for n := 0; n < 500; n++ {
		id := ids[rng.Intn(len(ids))]
		if rng.Intn(4) == 0 {
			tr.Clear(id)
			delete(expected, id)
			continue
		}
		tr.Increment(id)
		expected[id]++
	}

	sum := 0
	for _, id := range ids {
		assert.Equal(t, expected[id], tr.Count(id))
		sum += expected[id]
	}
	assert.Equal(t, sum, tr.Total())
}
