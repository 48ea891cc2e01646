// Package values provides the value types of layer properties along with
// their blending and default data binding registrations.
package values

import (
	"math"
	"slices"

	"github.com/matt-g-everett/ledtx/property"
)

// Float is a plain number.
type Float float64

// Interpolate implements property.Interpolable.
func (f Float) Interpolate(to Float, _, eased float64) Float {
	return f + (to-f)*Float(eased)
}

// Int is a whole number, rounded while blending.
type Int int

// Interpolate implements property.Interpolable.
func (i Int) Interpolate(to Int, _, eased float64) Int {
	return i + Int(math.Round(float64(to-i)*eased))
}

// Bool is a switch. It does not blend, keyframes snap.
type Bool bool

// Enum is one of a fixed set of named options. It does not blend.
type Enum string

// Point is a position on the strip, usually normalised to [0, 1].
type Point struct {
	X float64
	Y float64
}

// Interpolate implements property.Interpolable.
func (p Point) Interpolate(to Point, _, eased float64) Point {
	return Point{
		X: p.X + (to.X-p.X)*eased,
		Y: p.Y + (to.Y-p.Y)*eased,
	}
}

// Size is a two dimensional extent.
type Size struct {
	Width  float64
	Height float64
}

// Interpolate implements property.Interpolable.
func (s Size) Interpolate(to Size, _, eased float64) Size {
	return Size{
		Width:  s.Width + (to.Width-s.Width)*eased,
		Height: s.Height + (to.Height-s.Height)*eased,
	}
}

// NewFloat creates a float property whose whole value can be data bound.
func NewFloat(defaultValue Float, opts ...property.Option[Float]) *property.Property[Float] {
	p := property.New(defaultValue, opts...)
	bind(p, "", property.Replace[Float]())
	return p
}

// NewRange creates a float property whose data bound value is kept within
// [lo, hi].
func NewRange(defaultValue, lo, hi Float, opts ...property.Option[Float]) *property.Property[Float] {
	p := property.New(defaultValue, opts...)
	bind(p, "", property.Clamp(property.Replace[Float](), lo, hi))
	return p
}

// NewInt creates an integer property whose whole value can be data bound.
func NewInt(defaultValue Int, opts ...property.Option[Int]) *property.Property[Int] {
	p := property.New(defaultValue, opts...)
	bind(p, "", property.Replace[Int]())
	return p
}

// NewBool creates a switch property.
func NewBool(defaultValue Bool, opts ...property.Option[Bool]) *property.Property[Bool] {
	p := property.New(defaultValue, opts...)
	bind(p, "", property.Replace[Bool]())
	return p
}

// NewEnum creates a property limited to options. Data bound values outside
// options are ignored.
func NewEnum(defaultValue Enum, options []Enum, opts ...property.Option[Enum]) *property.Property[Enum] {
	p := property.New(defaultValue, opts...)
	bind[Enum, Enum](p, "", property.ConverterFunc[Enum](func(current, external Enum) Enum {
		if slices.Contains(options, external) {
			return external
		}
		return current
	}))
	return p
}

// NewPoint creates a point property with X and Y data bindable.
func NewPoint(defaultValue Point, opts ...property.Option[Point]) *property.Property[Point] {
	p := property.New(defaultValue, opts...)
	bind(p, "X", property.Replace[float64]())
	bind(p, "Y", property.Replace[float64]())
	return p
}

// NewSize creates a size property with Width and Height data bindable.
func NewSize(defaultValue Size, opts ...property.Option[Size]) *property.Property[Size] {
	p := property.New(defaultValue, opts...)
	bind(p, "Width", property.Replace[float64]())
	bind(p, "Height", property.Replace[float64]())
	return p
}

// bind registers a default data binding member. Registration can only fail
// through a programming error.
func bind[T comparable, P any](p *property.Property[T], member string, converter property.Converter[P]) {
	if !p.DataBindingsSupported() {
		return
	}
	if _, err := property.Register(p, member, converter); err != nil {
		panic(err)
	}
}
