package property

import (
	"fmt"
	"reflect"

	"github.com/matt-g-everett/ledtx/storage"
)

// Source computes the external value of a data binding once per frame.
type Source[P any] interface {
	Value(cursor Timeline) (P, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc[P any] func(cursor Timeline) (P, error)

// Value implements Source.
func (f SourceFunc[P]) Value(cursor Timeline) (P, error) {
	return f(cursor)
}

type binding[T comparable] interface {
	update(cursor Timeline)
	apply(current T) T
	save(entity *storage.PropertyEntity)
	dispose()
}

// DataBinding drives a registered member of a property from a source. Only
// bindings created from an expression are persisted with their source.
type DataBinding[T comparable, P any] struct {
	registration *Registration[T, P]
	source       Source[P]
	expression   string
	value        P
	hasValue     bool
	lastErr      error
	disposed     bool
}

func newDataBinding[T comparable, P any](r *Registration[T, P]) *DataBinding[T, P] {
	return &DataBinding[T, P]{registration: r}
}

// Registration returns the registration the binding belongs to.
func (b *DataBinding[T, P]) Registration() *Registration[T, P] {
	return b.registration
}

// Property returns the bound property.
func (b *DataBinding[T, P]) Property() *Property[T] {
	return b.registration.owner
}

// Expression returns the data model expression, empty for custom sources.
func (b *DataBinding[T, P]) Expression() string {
	return b.expression
}

// IsDisposed reports whether the binding was disabled or its property disposed.
func (b *DataBinding[T, P]) IsDisposed() bool {
	return b.disposed
}

// SetExpression compiles an expression against the data model of the
// property's owner and uses it as the source.
func (b *DataBinding[T, P]) SetExpression(expression string) error {
	p := b.registration.owner
	const op = "set data binding expression"
	if b.disposed {
		return newError(op, p.path, ErrDisposed, nil, "data binding %q", b.registration.member)
	}
	if err := p.check(op, true); err != nil {
		return err
	}
	model := p.element.DataModel()
	if model == nil {
		return newError(op, p.path, ErrInvalidArgument, nil, "owner has no data model")
	}

	compiled, err := model.Compile(expression, reflect.TypeFor[P]().Kind())
	if err != nil {
		return newError(op, p.path, ErrInvalidArgument, err, "")
	}

	b.expression = expression
	b.source = expressionSource[P]{expression: compiled}
	b.hasValue = false
	b.lastErr = nil
	return nil
}

// SetSource replaces the source with a custom one. The binding will no
// longer persist an expression.
func (b *DataBinding[T, P]) SetSource(source Source[P]) error {
	if b.disposed {
		return newError("set data binding source", b.registration.owner.path, ErrDisposed, nil, "data binding %q", b.registration.member)
	}
	b.expression = ""
	b.source = source
	b.hasValue = false
	b.lastErr = nil
	return nil
}

// Value returns the value computed by the last update.
func (b *DataBinding[T, P]) Value() (P, bool) {
	return b.value, b.hasValue
}

// LastError returns the error of the last update, or nil.
func (b *DataBinding[T, P]) LastError() error {
	return b.lastErr
}

// Update recomputes the source value. A failing source keeps the previous
// value.
func (b *DataBinding[T, P]) Update(cursor Timeline) {
	if b.disposed || b.source == nil {
		return
	}
	v, err := b.source.Value(cursor)
	if err != nil {
		b.lastErr = err
		return
	}
	b.value = v
	b.hasValue = true
	b.lastErr = nil
}

// Apply combines the last computed value into current through the
// registration's converter. Bindings without a value leave current as is.
func (b *DataBinding[T, P]) Apply(current T) T {
	if b.disposed || !b.hasValue {
		return current
	}
	return b.registration.apply(current, b.value)
}

func (b *DataBinding[T, P]) update(cursor Timeline) { b.Update(cursor) }

func (b *DataBinding[T, P]) apply(current T) T { return b.Apply(current) }

func (b *DataBinding[T, P]) save(entity *storage.PropertyEntity) {
	entity.DataBindingEntities = append(entity.DataBindingEntities, storage.DataBindingEntity{
		Identifier: b.registration.member,
		Expression: b.expression,
	})
}

func (b *DataBinding[T, P]) dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.source = nil
	if b.registration.binding == b {
		b.registration.clearBinding()
	}
}

type expressionSource[P any] struct {
	expression Expression
}

func (s expressionSource[P]) Value(cursor Timeline) (P, error) {
	out, err := s.expression.Evaluate(cursor.Position(), cursor.Length())
	if err != nil {
		var zero P
		return zero, err
	}
	return convert[P](out)
}

// convert turns an expression result into P. Numbers convert between numeric
// kinds, everything else must already have P's underlying kind.
func convert[P any](out interface{}) (P, error) {
	var zero P
	if v, ok := out.(P); ok {
		return v, nil
	}

	want := reflect.TypeFor[P]()
	v := reflect.ValueOf(out)
	if !v.IsValid() {
		return zero, fmt.Errorf("expression produced no value, want %s", want)
	}
	if (isNumeric(v.Kind()) && isNumeric(want.Kind())) || v.Kind() == want.Kind() {
		if v.Type().ConvertibleTo(want) {
			return v.Convert(want).Interface().(P), nil
		}
	}
	return zero, fmt.Errorf("expression produced %s, want %s", v.Type(), want)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
