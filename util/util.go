// Package util holds small helpers shared by brushes.
package util

import (
	"math/rand"
	"sync"

	"github.com/matt-g-everett/ledtx/easing"
)

// RandomBetween returns a random number in [lo, hi).
func RandomBetween(r *rand.Rand, lo, hi float64) float64 {
	return r.Float64()*(hi-lo) + lo
}

// GenerateLut builds a ramp of length samples that rises from 0 to 1 along fn
// and falls back to 0 mirrored.
func GenerateLut(length int, fn easing.Function) []float64 {
	lut := make([]float64, length)
	half := length / 2
	if half == 0 {
		return lut
	}
	increment := 1.0 / float64(half)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := easing.Interpolate(float64(i)*increment, fn)
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[half] = 1
	}
	return lut
}

type lutKey struct {
	length int
	fn     easing.Function
}

// Memoizer caches look-up tables by length and easing. It is safe for
// concurrent use.
type Memoizer struct {
	mu   sync.RWMutex
	luts map[lutKey][]float64
}

// GenerateLutMemoized returns GenerateLut(length, fn), computing it at most
// once per memoizer. Callers must not modify the returned table.
func GenerateLutMemoized(length int, fn easing.Function, m *Memoizer) []float64 {
	key := lutKey{length: length, fn: fn}

	m.mu.RLock()
	lut, ok := m.luts[key]
	m.mu.RUnlock()
	if ok {
		return lut
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lut, ok := m.luts[key]; ok {
		return lut
	}
	if m.luts == nil {
		m.luts = make(map[lutKey][]float64)
	}
	lut = GenerateLut(length, fn)
	m.luts[key] = lut
	return lut
}
