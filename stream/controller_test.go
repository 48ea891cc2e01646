package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtx/easing"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/storage"
	"github.com/matt-g-everett/ledtx/values"
)

type recordingPublisher struct {
	mu     sync.Mutex
	frames []*Frame
	err    error
}

func (p *recordingPublisher) Publish(f *Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, f)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func TestController_CalculateFrame(t *testing.T) {
	p := newTestProfile(
		&storage.LayerEntity{Name: "base", Brush: KindSolid},
		&storage.LayerEntity{Name: "top", Brush: KindSolid},
	)
	brushes, err := NewBrushes(p)
	require.NoError(t, err)
	base, top := brushes[0].(*Solid), brushes[1].(*Solid)
	require.NoError(t, base.colour.SetCurrentValue(values.Color{R: 1}))
	require.NoError(t, top.colour.SetCurrentValue(values.Color{B: 1}))

	// Fade the top layer in over the timeline
	require.NoError(t, top.opacity.SetKeyframesEnabled(true))
	require.NoError(t, top.opacity.AddKeyframe(property.NewKeyframe[values.Float](0, 0, easing.Linear)))
	require.NoError(t, top.opacity.AddKeyframe(property.NewKeyframe[values.Float](1, 10*time.Second, easing.Linear)))

	c := NewController(p, brushes, 3, time.Second/30, nil)

	f, err := c.CalculateFrame(0)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", f.Pixel(0).Hex())

	f, err = c.CalculateFrame(9999 * time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, top.Opacity(), 1e-3)
	assert.NotEqual(t, "#ff0000", f.Pixel(0).Hex())
}

func TestController_Run(t *testing.T) {
	p := newTestProfile(&storage.LayerEntity{Name: "base", Brush: KindSolid})
	brushes, err := NewBrushes(p)
	require.NoError(t, err)
	c := NewController(p, brushes, 5, time.Millisecond, nil)

	pub := &recordingPublisher{err: errors.New("offline")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, pub) }()

	require.Eventually(t, func() bool { return pub.count() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	l, _ := p.Layer("base")
	assert.Positive(t, l.Clock().Position())
}
