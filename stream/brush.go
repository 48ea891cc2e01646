package stream

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/matt-g-everett/ledtx/profile"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/values"
)

// Brush kinds stored in layer entities.
const (
	KindSolid         = "solid"
	KindGradientTrail = "gradient-trail"
	KindTwinkle       = "twinkle"
)

// A Brush renders the current property values of its layer into a frame.
type Brush interface {
	Layer() *profile.Layer
	// Opacity is the weight of the layer when blended over the layers below.
	Opacity() float64
	Render(f *Frame)
}

// NewBrush creates the brush stored for layer, adding its properties to the
// layer.
func NewBrush(layer *profile.Layer) (Brush, error) {
	var (
		b   Brush
		err error
	)
	switch layer.Brush() {
	case KindSolid, "":
		var s *Solid
		s, err = NewSolid(layer)
		b = s
	case KindGradientTrail:
		var g *GradientTrail
		g, err = NewGradientTrail(layer)
		b = g
	case KindTwinkle:
		var t *Twinkle
		t, err = NewTwinkle(layer, rand.New(rand.NewSource(time.Now().UnixNano())))
		b = t
	default:
		err = fmt.Errorf("layer %q: unknown brush %q", layer.Name(), layer.Brush())
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewBrushes creates a brush for every layer of p and loads the profile.
func NewBrushes(p *profile.Profile) ([]Brush, error) {
	var brushes []Brush
	for _, l := range p.Layers() {
		b, err := NewBrush(l)
		if err != nil {
			return nil, err
		}
		brushes = append(brushes, b)
	}
	if err := p.Load(); err != nil {
		return nil, fmt.Errorf("failed to load profile %q: %w", p.Name(), err)
	}
	return brushes, nil
}

// base holds the properties every brush has.
type base struct {
	layer   *profile.Layer
	opacity *property.Property[values.Float]
}

func newBase(layer *profile.Layer) (base, error) {
	b := base{
		layer:   layer,
		opacity: values.NewRange(1, 0, 1),
	}
	err := profile.Add(layer.Properties(), "opacity", b.opacity, property.Description{
		Name:        "Opacity",
		Description: "Weight of the layer over the layers below",
		InputAffix:  "%",
	})
	return b, err
}

func (b base) Layer() *profile.Layer {
	return b.layer
}

func (b base) Opacity() float64 {
	return clamp01(float64(b.opacity.CurrentValue()))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
