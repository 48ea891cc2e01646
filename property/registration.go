package property

import (
	"fmt"
	"go/token"
	"reflect"

	"github.com/matt-g-everett/ledtx/storage"
)

// DataBindingRegistration is the type-erased view of a Registration.
type DataBindingRegistration interface {
	// Member returns the registered field name, empty for the whole value.
	Member() string
	// ValueType returns the type of the registered member.
	ValueType() reflect.Type
	// IsActive reports whether a data binding is enabled for the registration.
	IsActive() bool
}

type registration[T comparable] interface {
	DataBindingRegistration
	createBinding(entity *storage.PropertyEntity) (binding[T], error)
	clearBinding()
}

// Registration declares that a member of T, or T itself, can be driven by a
// data binding.
type Registration[T comparable, P any] struct {
	owner     *Property[T]
	member    string
	converter Converter[P]
	get       func(T) P
	set       func(T, P) T
	binding   *DataBinding[T, P]
}

// Register declares a data-bindable member of the property value. member is
// either empty, selecting the whole value, or the name of one exported field
// of T. The member type must be P and the converter must support P.
func Register[T comparable, P any](p *Property[T], member string, converter Converter[P]) (*Registration[T, P], error) {
	const op = "register data binding"
	if err := p.check(op, false); err != nil {
		return nil, err
	}
	if !p.dataBindingsSupported {
		return nil, newError(op, p.path, ErrInvalidArgument, nil, "data bindings are not supported")
	}
	if converter == nil {
		return nil, newError(op, p.path, ErrInvalidArgument, nil, "converter is required")
	}

	get, set, err := accessor[T, P](member)
	if err != nil {
		return nil, newError(op, p.path, ErrInvalidArgument, err, "")
	}
	if want := reflect.TypeFor[P](); converter.SupportedType() != want {
		return nil, newError(op, p.path, ErrInvalidArgument, nil,
			"converter supports %s, member %q is %s", converter.SupportedType(), member, want)
	}
	for _, r := range p.registrations {
		if r.Member() == member {
			return nil, newError(op, p.path, ErrInvalidArgument, nil, "member %q is already registered", member)
		}
	}

	r := &Registration[T, P]{
		owner:     p,
		member:    member,
		converter: converter,
		get:       get,
		set:       set,
	}
	p.registrations = append(p.registrations, r)
	return r, nil
}

// accessor resolves a member path into a getter and setter. Only the whole
// value or a single direct field access is accepted.
func accessor[T, P any](member string) (get func(T) P, set func(T, P) T, err error) {
	valueType := reflect.TypeFor[T]()
	memberType := reflect.TypeFor[P]()

	if member == "" {
		if valueType != memberType {
			return nil, nil, fmt.Errorf("whole value is %s, not %s", valueType, memberType)
		}
		get = func(v T) P { return any(v).(P) }
		set = func(_ T, m P) T { return any(m).(T) }
		return get, set, nil
	}

	if !token.IsIdentifier(member) || !token.IsExported(member) {
		return nil, nil, fmt.Errorf("member %q must be empty or a single exported field name", member)
	}
	if valueType.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%s has no fields", valueType)
	}
	field, ok := valueType.FieldByName(member)
	if !ok || len(field.Index) != 1 {
		return nil, nil, fmt.Errorf("%s has no field %q", valueType, member)
	}
	if field.Type != memberType {
		return nil, nil, fmt.Errorf("field %q is %s, not %s", member, field.Type, memberType)
	}

	index := field.Index[0]
	get = func(v T) P {
		return reflect.ValueOf(v).Field(index).Interface().(P)
	}
	set = func(v T, m P) T {
		out := reflect.New(valueType).Elem()
		out.Set(reflect.ValueOf(v))
		out.Field(index).Set(reflect.ValueOf(&m).Elem())
		return out.Interface().(T)
	}
	return get, set, nil
}

// LookupRegistration finds the registration of member with member type P.
func LookupRegistration[T comparable, P any](p *Property[T], member string) (*Registration[T, P], bool) {
	for _, r := range p.registrations {
		if typed, ok := r.(*Registration[T, P]); ok && typed.member == member {
			return typed, true
		}
	}
	return nil, false
}

// Registrations returns every registration of the property.
func (p *Property[T]) Registrations() []DataBindingRegistration {
	out := make([]DataBindingRegistration, len(p.registrations))
	for i, r := range p.registrations {
		out[i] = r
	}
	return out
}

// DataBindingsSupported reports whether the property accepts data bindings.
func (p *Property[T]) DataBindingsSupported() bool {
	return p.dataBindingsSupported
}

// HasDataBinding reports whether any registration has an active binding.
func (p *Property[T]) HasDataBinding() bool {
	return len(p.dataBindings) > 0
}

// Member implements DataBindingRegistration.
func (r *Registration[T, P]) Member() string {
	return r.member
}

// ValueType implements DataBindingRegistration.
func (r *Registration[T, P]) ValueType() reflect.Type {
	return reflect.TypeFor[P]()
}

// IsActive implements DataBindingRegistration.
func (r *Registration[T, P]) IsActive() bool {
	return r.binding != nil
}

// Property returns the property the registration belongs to.
func (r *Registration[T, P]) Property() *Property[T] {
	return r.owner
}

// DataBinding returns the active binding, or nil.
func (r *Registration[T, P]) DataBinding() *DataBinding[T, P] {
	return r.binding
}

// Get reads the registered member from a value.
func (r *Registration[T, P]) Get(value T) P {
	return r.get(value)
}

// apply combines an external value into the registered member of value.
func (r *Registration[T, P]) apply(value T, external P) T {
	return r.set(value, r.converter.Combine(r.get(value), external))
}

func (r *Registration[T, P]) clearBinding() {
	r.binding = nil
}

// createBinding recreates the binding stored for this registration, if any.
func (r *Registration[T, P]) createBinding(entity *storage.PropertyEntity) (binding[T], error) {
	stored := entity.DataBinding(r.member)
	if stored == nil {
		return nil, nil
	}

	b := newDataBinding(r)
	if stored.Expression != "" {
		if err := b.SetExpression(stored.Expression); err != nil {
			return nil, err
		}
	}
	r.binding = b
	return b, nil
}

// EnableDataBinding activates a data binding for a registration of p.
func EnableDataBinding[T comparable, P any](p *Property[T], r *Registration[T, P]) (*DataBinding[T, P], error) {
	const op = "enable data binding"
	if err := p.check(op, true); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, newError(op, p.path, ErrInvalidArgument, nil, "registration is required")
	}
	if r.owner != p {
		return nil, newError(op, p.path, ErrIncompatibleRegistration, nil,
			"registration %q belongs to a different property", r.member)
	}
	if r.binding != nil {
		return nil, newError(op, p.path, ErrIncompatibleRegistration, nil,
			"registration %q already has an enabled data binding", r.member)
	}

	b := newDataBinding(r)
	r.binding = b
	p.dataBindings = append(p.dataBindings, b)
	p.emit(DataBindingEnabled)
	return b, nil
}

// DisableDataBinding deactivates a data binding of p and disposes it.
// Disabling a binding that is no longer active does nothing.
func DisableDataBinding[T comparable, P any](p *Property[T], b *DataBinding[T, P]) error {
	const op = "disable data binding"
	if err := p.check(op, false); err != nil {
		return err
	}
	if b == nil {
		return newError(op, p.path, ErrInvalidArgument, nil, "data binding is required")
	}
	if b.registration.owner != p {
		return newError(op, p.path, ErrIncompatibleRegistration, nil,
			"data binding %q belongs to a different property", b.registration.member)
	}

	i := -1
	for j, active := range p.dataBindings {
		if active == binding[T](b) {
			i = j
			break
		}
	}
	if i < 0 {
		return nil
	}

	p.dataBindings = append(p.dataBindings[:i:i], p.dataBindings[i+1:]...)
	b.dispose()
	p.emit(DataBindingDisabled)
	return nil
}
