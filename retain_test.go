package olsbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetain_Identity(t *testing.T) {
	assert.Equal(t, 42, Retain(42))
	assert.Equal(t, "label", Retain("label"))
	assert.Equal(t, [3]byte{1, 2, 3}, Retain([3]byte{1, 2, 3}))

	p := new(int)
	assert.Same(t, p, Retain(p))

	type pair struct{ a, b float64 }
	assert.Equal(t, pair{1, 2}, Retain(pair{1, 2}))
}

func TestRetainTier(t *testing.T) {
	assert.Contains(t, []string{"noinline", "sink"}, RetainTier())
}

func TestRetain_NoAllocationOnNoinlineTier(t *testing.T) {
	if RetainTier() != "noinline" {
		t.Skipf("tier %q boxes values", RetainTier())
	}

	allocs := testing.AllocsPerRun(1000, func() {
		Retain(12345)
	})
	assert.Zero(t, allocs)
}
