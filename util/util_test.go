package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtx/easing"
)

func TestGenerateLut(t *testing.T) {
	lut := GenerateLut(8, easing.Linear)
	require.Len(t, lut, 8)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 0.75, 0.5, 0.25, 0}, lut, 1e-9)

	odd := GenerateLut(5, easing.Linear)
	assert.Equal(t, 1.0, odd[2])
	assert.Equal(t, odd[0], odd[4])

	assert.Equal(t, []float64{0}, GenerateLut(1, easing.Linear))
	assert.Empty(t, GenerateLut(0, easing.Linear))
}

func TestGenerateLutMemoized(t *testing.T) {
	var m Memoizer
	a := GenerateLutMemoized(12, easing.InOutQuad, &m)
	b := GenerateLutMemoized(12, easing.InOutQuad, &m)
	c := GenerateLutMemoized(12, easing.Linear, &m)

	assert.Same(t, &a[0], &b[0])
	assert.NotSame(t, &a[0], &c[0])
	assert.Equal(t, GenerateLut(12, easing.InOutQuad), a)
}

func TestRandomBetween(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for range 100 {
		v := RandomBetween(r, 0.5, 1.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.5)
	}
}
