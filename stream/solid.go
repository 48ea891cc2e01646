package stream

import (
	"github.com/matt-g-everett/ledtx/profile"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/values"
)

// A Solid fills the strip with one colour.
type Solid struct {
	base
	colour *property.Property[values.Color]
}

// NewSolid creates an instance of a Solid brush.
func NewSolid(layer *profile.Layer) (*Solid, error) {
	b, err := newBase(layer)
	if err != nil {
		return nil, err
	}

	s := new(Solid)
	s.base = b
	s.colour = values.NewColor(values.Color{R: 0.5, G: 0.5, B: 0.5})
	if err := profile.Add(layer.Properties(), "colour", s.colour, property.Description{Name: "Colour"}); err != nil {
		return nil, err
	}
	return s, nil
}

// Render implements Brush.
func (s *Solid) Render(f *Frame) {
	f.Fill(s.colour.CurrentValue().Colorful())
}
