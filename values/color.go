package values

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtx/property"
)

// Color is an RGB colour with channels in [0, 1]. It is stored as a hex
// string.
type Color struct {
	R float64
	G float64
	B float64
}

// FromColorful converts a go-colorful colour.
func FromColorful(c colorful.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// ParseColor reads a "#rrggbb" hex colour.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// Colorful converts the colour for rendering.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

func (c Color) String() string {
	return c.Hex()
}

// Interpolate blends in HCL space, the same way frames are blended.
func (c Color) Interpolate(to Color, _, eased float64) Color {
	return FromColorful(c.Colorful().BlendHcl(to.Colorful(), eased).Clamped())
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NewColor creates a colour property with each channel data bindable. Bound
// channels are clamped to [0, 1].
func NewColor(defaultValue Color, opts ...property.Option[Color]) *property.Property[Color] {
	p := property.New(defaultValue, opts...)
	for _, channel := range []string{"R", "G", "B"} {
		bind(p, channel, property.Clamp(property.Replace[float64](), 0, 1))
	}
	return p
}
