package stream

import (
	"math"

	"github.com/matt-g-everett/ledtx/profile"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/values"
)

// A GradientTrail cycles a gradient along an led strip.
type GradientTrail struct {
	base
	gradient    GradientTable
	trailLength *property.Property[values.Int]
	speed       *property.Property[values.Float]
	saturation  *property.Property[values.Float]
	luminance   *property.Property[values.Float]
}

// NewGradientTrail creates an instance of a GradientTrail brush drawing the
// rainbow gradient.
func NewGradientTrail(layer *profile.Layer) (*GradientTrail, error) {
	b, err := newBase(layer)
	if err != nil {
		return nil, err
	}

	g := new(GradientTrail)
	g.base = b
	g.gradient = Rainbow
	g.trailLength = values.NewInt(200)
	g.speed = values.NewFloat(60)
	g.saturation = values.NewRange(1, 0, 1)
	g.luminance = values.NewRange(0.05, 0, 1)

	group := layer.Properties()
	for _, err := range []error{
		profile.Add(group, "trail_length", g.trailLength, property.Description{Name: "Trail length", InputAffix: "px"}),
		profile.Add(group, "speed", g.speed, property.Description{Name: "Speed", InputAffix: "px/s"}),
		profile.Add(group, "saturation", g.saturation, property.Description{Name: "Saturation"}),
		profile.Add(group, "luminance", g.luminance, property.Description{Name: "Luminance"}),
	} {
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Render implements Brush. The trail position follows the layer timeline.
func (g *GradientTrail) Render(f *Frame) {
	trail := float64(max(1, g.trailLength.CurrentValue()))
	offset := float64(g.speed.CurrentValue()) * g.layer.Clock().Position().Seconds()
	saturation := float64(g.saturation.CurrentValue())
	luminance := float64(g.luminance.CurrentValue())

	for i := 0; i < f.Len(); i++ {
		t := math.Mod(float64(i)-offset, trail)
		if t < 0 {
			t += trail
		}
		f.SetPixel(i, g.gradient.GetColor(t/trail, saturation, luminance))
	}
}
