package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matt-g-everett/ledtx/profile"
)

// A Publisher sends rendered frames to a device.
type Publisher interface {
	Publish(f *Frame) error
}

// Controller advances a profile and renders it frame by frame.
type Controller struct {
	profile  *profile.Profile
	brushes  []Brush
	pixels   int
	interval time.Duration
	logger   *slog.Logger
}

// NewController creates an instance of a Controller rendering brushes of p
// onto a strip of the given number of pixels.
func NewController(p *profile.Profile, brushes []Brush, pixels int, interval time.Duration, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	c := new(Controller)
	c.profile = p
	c.brushes = brushes
	c.pixels = pixels
	c.interval = interval
	c.logger = logger
	return c
}

// CalculateFrame advances the profile by delta and renders a frame.
func (c *Controller) CalculateFrame(delta time.Duration) (*Frame, error) {
	if err := c.profile.Update(delta); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return c.Render(), nil
}

// Render composites the brushes in layer order without advancing time.
func (c *Controller) Render() *Frame {
	f := NewFrame(c.pixels)
	for _, b := range c.brushes {
		opacity := b.Opacity()
		if opacity == 0 {
			continue
		}
		layer := NewFrame(c.pixels)
		b.Render(layer)
		f = f.InterpolateFrame(layer, opacity)
	}
	return f
}

// Run renders and publishes frames until ctx is cancelled. Time advances by
// the wall clock, so a late frame catches up instead of slowing animations.
func (c *Controller) Run(ctx context.Context, pub Publisher) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now

			f, err := c.CalculateFrame(delta)
			if err != nil {
				return err
			}
			if err := pub.Publish(f); err != nil {
				c.logger.Warn("failed to publish frame", "error", err)
			}
		}
	}
}
