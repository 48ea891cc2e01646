package property

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is a value that converters can add and scale.
type Number interface {
	constraints.Integer | constraints.Float
}

// Converter combines an externally computed value into the current value of
// a registered member.
type Converter[P any] interface {
	// SupportedType returns the member type the converter works on.
	SupportedType() reflect.Type
	// Combine returns the new member value given its current value and the
	// value computed by the data binding.
	Combine(current, external P) P
}

// ConverterFunc adapts a combine function to a Converter.
type ConverterFunc[P any] func(current, external P) P

// SupportedType implements Converter.
func (f ConverterFunc[P]) SupportedType() reflect.Type {
	return reflect.TypeFor[P]()
}

// Combine implements Converter.
func (f ConverterFunc[P]) Combine(current, external P) P {
	return f(current, external)
}

// Replace returns a converter that overrides the member with the external value.
func Replace[P any]() Converter[P] {
	return ConverterFunc[P](func(_, external P) P {
		return external
	})
}

// Sum returns a converter that adds the external value to the member.
func Sum[P Number]() Converter[P] {
	return ConverterFunc[P](func(current, external P) P {
		return current + external
	})
}

// Scale returns a converter that multiplies the member by the external value.
func Scale[P Number]() Converter[P] {
	return ConverterFunc[P](func(current, external P) P {
		return current * external
	})
}

type clampConverter[P Number] struct {
	inner  Converter[P]
	lo, hi P
}

// Clamp wraps a converter so its result stays within [lo, hi].
func Clamp[P Number](inner Converter[P], lo, hi P) Converter[P] {
	return &clampConverter[P]{inner: inner, lo: lo, hi: hi}
}

func (c *clampConverter[P]) SupportedType() reflect.Type {
	return c.inner.SupportedType()
}

func (c *clampConverter[P]) Combine(current, external P) P {
	return max(c.lo, min(c.hi, c.inner.Combine(current, external)))
}
