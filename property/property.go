// Package property implements animated, persistable parameters of rendered
// elements.
//
// A Property holds a strongly typed value that is either a constant base
// value, interpolated from keyframes positioned on a timeline, or overridden
// by data bindings evaluated against a live data model. The rendering loop
// calls Update once per frame to recompute the current value.
//
// Properties are not safe for concurrent use. The rendering loop owns them and
// must serialize Update with edits made through SetCurrentValue and friends.
package property

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/matt-g-everett/ledtx/easing"
	"github.com/matt-g-everett/ledtx/storage"
)

// Interpolable is implemented by value types that can blend between two
// keyframe values. progress is the linear progress between the keyframes,
// eased is the same progress shaped by the current keyframe's easing.
type Interpolable[T any] interface {
	Interpolate(to T, progress, eased float64) T
}

// InterpolateFunc blends two keyframe values for types that cannot implement
// Interpolable themselves.
type InterpolateFunc[T any] func(from, to T, progress, eased float64) T

// Animated is the type-erased view of a Property used by owners that manage
// properties of mixed value types.
type Animated interface {
	Path() string
	Description() Description
	ValueType() reflect.Type
	IsHidden() bool
	KeyframesEnabled() bool
	CurrentValueAny() interface{}
	SetCurrentValueFromString(text string, at *time.Duration) error
	SetKeyframeEasingAt(at time.Duration, fn easing.Function) (bool, error)
	SetKeyframesEnabled(enabled bool) error
	Update(cursor Timeline) error
	Load() error
	Save() error
	LoadIssues() []error
	Dispose()
}

var _ Animated = (*Property[float64])(nil)

// Property is an animated value of type T.
type Property[T comparable] struct {
	element           Element
	group             Group
	entity            *storage.PropertyEntity
	description       Description
	path              string
	loadedFromStorage bool
	initialized       bool
	disposed          bool

	baseValue    T
	currentValue T
	defaultValue T
	interpolate  InterpolateFunc[T]

	keyframesSupported bool
	keyframesEnabled   bool
	keyframes          []*Keyframe[T]
	currentKeyframe    *Keyframe[T]
	nextKeyframe       *Keyframe[T]

	dataBindingsSupported bool
	registrations         []registration[T]
	dataBindings          []binding[T]

	hidden         bool
	observers      []observer[T]
	nextObserverID int
	loadIssues     []error
	logger         *slog.Logger
}

// Option configures a Property at construction.
type Option[T comparable] func(*Property[T])

// WithInterpolator sets the blend used when T does not implement Interpolable.
func WithInterpolator[T comparable](fn InterpolateFunc[T]) Option[T] {
	return func(p *Property[T]) {
		p.interpolate = fn
	}
}

// WithoutKeyframes marks the property as not supporting keyframes.
func WithoutKeyframes[T comparable]() Option[T] {
	return func(p *Property[T]) {
		p.keyframesSupported = false
	}
}

// WithoutDataBindings marks the property as not supporting data bindings.
func WithoutDataBindings[T comparable]() Option[T] {
	return func(p *Property[T]) {
		p.dataBindingsSupported = false
	}
}

// WithLogger sets the logger used to report recoverable load problems.
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(p *Property[T]) {
		p.logger = logger
	}
}

// New creates an uninitialized property. The default value is applied when
// nothing is stored for the property.
func New[T comparable](defaultValue T, opts ...Option[T]) *Property[T] {
	p := new(Property[T])
	p.defaultValue = defaultValue
	p.keyframesSupported = true
	p.dataBindingsSupported = true
	p.logger = slog.Default()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize binds the property to its owner and storage entity. fromStorage
// reports whether the entity was read from storage, as opposed to created
// for a property that was never saved.
func (p *Property[T]) Initialize(owner Element, group Group, entity *storage.PropertyEntity, fromStorage bool, description Description, path string) error {
	const op = "initialize"
	if p.disposed {
		return newError(op, path, ErrDisposed, nil, "")
	}
	if owner == nil {
		return newError(op, path, ErrInvalidArgument, nil, "owner is required")
	}
	if group == nil {
		return newError(op, path, ErrInvalidArgument, nil, "group is required")
	}
	if entity == nil {
		return newError(op, path, ErrInvalidArgument, nil, "storage entity is required")
	}

	p.element = owner
	p.group = group
	p.entity = entity
	p.loadedFromStorage = fromStorage
	p.description = description
	p.path = path
	p.initialized = true

	if description.DisableKeyframes {
		p.keyframesSupported = false
	}
	if description.Hidden {
		p.hidden = true
	}
	return nil
}

func (p *Property[T]) check(op string, needsInit bool) error {
	if p.disposed {
		return newError(op, p.path, ErrDisposed, nil, "")
	}
	if needsInit && !p.initialized {
		return newError(op, p.path, ErrNotInitialized, nil, "")
	}
	return nil
}

// Path returns the path of the property within its group.
func (p *Property[T]) Path() string {
	return p.path
}

// Description returns the authored metadata of the property.
func (p *Property[T]) Description() Description {
	return p.description
}

// Element returns the owning profile element, nil before initialization.
func (p *Property[T]) Element() Element {
	return p.element
}

// ValueType returns the type of the property value.
func (p *Property[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsInitialized reports whether Initialize has run.
func (p *Property[T]) IsInitialized() bool {
	return p.initialized
}

// IsDisposed reports whether Dispose has run.
func (p *Property[T]) IsDisposed() bool {
	return p.disposed
}

// IsLoadedFromStorage reports whether the storage entity existed before the
// property was initialized.
func (p *Property[T]) IsLoadedFromStorage() bool {
	return p.loadedFromStorage
}

// BaseValue returns the value without keyframes or data bindings applied.
func (p *Property[T]) BaseValue() T {
	return p.baseValue
}

// CurrentValue returns the value computed by the last update.
func (p *Property[T]) CurrentValue() T {
	return p.currentValue
}

// CurrentValueAny returns CurrentValue as an interface value.
func (p *Property[T]) CurrentValueAny() interface{} {
	return p.currentValue
}

// DefaultValue returns the value applied when nothing is stored.
func (p *Property[T]) DefaultValue() T {
	return p.defaultValue
}

// SetDefaultValue changes the default value. The base value is not touched.
func (p *Property[T]) SetDefaultValue(value T) error {
	if err := p.check("set default value", false); err != nil {
		return err
	}
	p.defaultValue = value
	return nil
}

// IsHidden reports whether the property is hidden from editors.
func (p *Property[T]) IsHidden() bool {
	return p.hidden
}

// SetHidden changes the visibility of the property.
func (p *Property[T]) SetHidden(hidden bool) error {
	if err := p.check("set hidden", false); err != nil {
		return err
	}
	p.hidden = hidden
	p.emit(VisibilityChanged)
	return nil
}

// SetBaseValue changes the base value and immediately reapplies keyframes and
// data bindings. Setting an equal value does nothing.
func (p *Property[T]) SetBaseValue(value T) error {
	if err := p.check("set base value", true); err != nil {
		return err
	}
	if p.baseValue == value {
		return nil
	}
	p.baseValue = value
	p.reapply()
	return nil
}

// SetCurrentValue sets the base value and reapplies.
func (p *Property[T]) SetCurrentValue(value T) error {
	if err := p.check("set current value", true); err != nil {
		return err
	}
	p.baseValue = value
	p.reapply()
	return nil
}

// SetCurrentValueAt sets the value of the keyframe at the given position,
// creating a linear keyframe if none exists there. When keyframes are
// disabled or unsupported the base value is set instead. With duplicate
// positions the first keyframe in sorted order is edited.
func (p *Property[T]) SetCurrentValueAt(value T, at time.Duration) error {
	if err := p.check("set current value", true); err != nil {
		return err
	}

	if !p.keyframesEnabled || !p.keyframesSupported {
		p.baseValue = value
	} else if k := p.keyframeAt(at); k != nil {
		k.value = value
	} else {
		p.addKeyframe(NewKeyframe(value, at, easing.Linear))
	}

	p.reapply()
	return nil
}

// SetCurrentValueFromString decodes a stored payload and sets it like
// SetCurrentValue, or SetCurrentValueAt when at is not nil.
func (p *Property[T]) SetCurrentValueFromString(text string, at *time.Duration) error {
	const op = "set current value"
	if err := p.check(op, true); err != nil {
		return err
	}

	var value T
	if err := storage.Decode(text, &value); err != nil {
		return newError(op, p.path, ErrInvalidArgument, err, "cannot read %s", p.ValueType())
	}
	if at == nil {
		return p.SetCurrentValue(value)
	}
	return p.SetCurrentValueAt(value, *at)
}

// ApplyDefaultValue sets both the base and the current value to the default
// value without running keyframes or data bindings.
func (p *Property[T]) ApplyDefaultValue() error {
	if err := p.check("apply default value", false); err != nil {
		return err
	}
	p.baseValue = p.defaultValue
	p.currentValue = p.defaultValue
	return nil
}

// reapply forces an update outside the frame loop after a direct edit.
func (p *Property[T]) reapply() {
	if tl := p.element.Timeline(); tl != nil {
		tl.ClearDelta()
		p.update(tl)
	}
	p.emit(CurrentValueSet)
	p.group.OnCurrentValueSet(p.path)
}

// Update recomputes the current value: the base value, then keyframes if
// supported and enabled, then data bindings unless the timeline is
// overridden.
func (p *Property[T]) Update(cursor Timeline) error {
	const op = "update"
	if err := p.check(op, true); err != nil {
		return err
	}
	if cursor == nil {
		return newError(op, p.path, ErrInvalidArgument, nil, "timeline is required")
	}
	p.update(cursor)
	return nil
}

func (p *Property[T]) update(cursor Timeline) {
	p.currentValue = p.baseValue
	p.updateKeyframes(cursor)
	p.updateDataBindings(cursor)
	p.emit(Updated)
}

func (p *Property[T]) updateDataBindings(cursor Timeline) {
	// Bindings must not fight with the editor while a position is being scrubbed
	if cursor.IsOverridden() {
		return
	}
	for _, b := range p.dataBindings {
		b.update(cursor)
		p.currentValue = b.apply(p.currentValue)
	}
}

func (p *Property[T]) blend(from, to T, progress, eased float64) T {
	if i, ok := any(from).(Interpolable[T]); ok {
		return i.Interpolate(to, progress, eased)
	}
	if p.interpolate != nil {
		return p.interpolate(from, to, progress, eased)
	}
	return from
}

// Dispose releases all data bindings. Every later mutating call returns
// ErrDisposed. Dispose must not run while an update is in flight.
func (p *Property[T]) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	for _, b := range p.dataBindings {
		b.dispose()
	}
	p.dataBindings = nil
}

func (p *Property[T]) String() string {
	return fmt.Sprintf("%s (%s) = %v", p.path, p.ValueType(), p.currentValue)
}
