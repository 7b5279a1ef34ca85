package ordering

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMonotonicity(t *testing.T) {
	// N sequential appends must read back in append order.
	keys := make([]float64, 0, 10)
	max := 0.0
	for i := 0; i < 10; i++ {
		k := Append(max)
		keys = append(keys, k)
		max = k
	}

	sorted := append([]float64(nil), keys...)
	sort.Float64s(sorted)
	assert.Equal(t, keys, sorted, "appended keys should already be in sort order")
	assert.Equal(t, 1024.0, keys[0], "first append into empty category starts at the step")
}

func TestBetweenMidpoints(t *testing.T) {
	// Inserting between 1024 and 2048 yields 1536; between 1024 and 1536
	// yields 1280. Neighbor keys never change.
	first := Between(1024, 2048)
	assert.Equal(t, 1536.0, first)

	second := Between(1024, first)
	assert.Equal(t, 1280.0, second)
}

func TestBoundaryInserts(t *testing.T) {
	assert.Equal(t, 512.0, Before(1024), "drop at the start halves the first key")
	assert.Equal(t, 3072.0, After(2048), "drop at the end extends by one step")
	assert.Equal(t, 1024.0, Initial(), "drop onto an empty category resets to the step")
}

func TestAppendBatch(t *testing.T) {
	// A batch appended to a category with max 2048 spreads by full steps in
	// batch order.
	assert.Equal(t, 3072.0, AppendBatch(2048, 0))
	assert.Equal(t, 4096.0, AppendBatch(2048, 1))
	assert.Equal(t, 5120.0, AppendBatch(2048, 2))

	// Into an empty category the batch starts from the step.
	assert.Equal(t, 1024.0, AppendBatch(0, 0))
	assert.Equal(t, 2048.0, AppendBatch(0, 1))
}
