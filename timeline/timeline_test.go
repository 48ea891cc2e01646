package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		loop     bool
		steps    []time.Duration
		position time.Duration
		delta    time.Duration
	}{
		{"advance", false, []time.Duration{time.Second, 2 * time.Second}, 3 * time.Second, 2 * time.Second},
		{"stops at end", false, []time.Duration{9 * time.Second, 5 * time.Second}, 10 * time.Second, time.Second},
		{"wraps when looping", true, []time.Duration{9 * time.Second, 3 * time.Second}, 2 * time.Second, -7 * time.Second},
		{"exact end wraps to start", true, []time.Duration{10 * time.Second}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := New(10*time.Second, tt.loop)
			for _, step := range tt.steps {
				tl.Update(step)
			}
			assert.Equal(t, tt.position, tl.Position())
			assert.Equal(t, tt.delta, tl.Delta())
		})
	}
}

func TestIsFinished(t *testing.T) {
	tl := New(time.Second, false)
	assert.False(t, tl.IsFinished())
	tl.Update(2 * time.Second)
	assert.True(t, tl.IsFinished())

	looping := New(time.Second, true)
	looping.Update(2 * time.Second)
	assert.False(t, looping.IsFinished())
}

func TestOverride(t *testing.T) {
	tl := New(10*time.Second, false)
	tl.Update(time.Second)

	tl.Override(4 * time.Second)
	assert.True(t, tl.IsOverridden())
	assert.Equal(t, 4*time.Second, tl.Position())
	assert.Zero(t, tl.Delta())

	tl.Update(time.Second)
	assert.Equal(t, 4*time.Second, tl.Position(), "overridden timelines do not advance")

	tl.ClearOverride()
	assert.False(t, tl.IsOverridden())
	tl.Update(time.Second)
	assert.Equal(t, 5*time.Second, tl.Position())
}

func TestClearDelta(t *testing.T) {
	tl := New(10*time.Second, false)
	tl.Update(500 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, tl.Delta())

	tl.ClearDelta()
	assert.Zero(t, tl.Delta())
	assert.Equal(t, 500*time.Millisecond, tl.Position())
}

func TestJumpToAndSetLength(t *testing.T) {
	tl := New(10*time.Second, false)
	tl.JumpTo(20 * time.Second)
	assert.Equal(t, 10*time.Second, tl.Position())
	tl.JumpTo(-time.Second)
	assert.Zero(t, tl.Position())

	tl.JumpTo(8 * time.Second)
	tl.SetLength(5 * time.Second)
	assert.Equal(t, 5*time.Second, tl.Length())
	assert.Equal(t, 5*time.Second, tl.Position())
}
