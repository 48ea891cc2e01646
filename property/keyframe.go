package property

import (
	"cmp"
	"slices"
	"time"
	"weak"

	"github.com/matt-g-everett/ledtx/easing"
)

// Keyframe is a value positioned on the timeline. The easing shapes the
// interpolation from this keyframe towards the next one.
type Keyframe[T comparable] struct {
	value    T
	position time.Duration
	easing   easing.Function

	// owner never keeps the property alive
	owner weak.Pointer[Property[T]]
}

// NewKeyframe creates a detached keyframe.
func NewKeyframe[T comparable](value T, position time.Duration, fn easing.Function) *Keyframe[T] {
	return &Keyframe[T]{
		value:    value,
		position: position,
		easing:   fn,
	}
}

// Value returns the keyframe value.
func (k *Keyframe[T]) Value() T {
	return k.value
}

// SetValue changes the keyframe value.
func (k *Keyframe[T]) SetValue(value T) error {
	if err := k.checkOwner("set keyframe value"); err != nil {
		return err
	}
	k.value = value
	return nil
}

// Position returns the keyframe position.
func (k *Keyframe[T]) Position() time.Duration {
	return k.position
}

// SetPosition moves the keyframe, keeping the owner's keyframes sorted.
func (k *Keyframe[T]) SetPosition(position time.Duration) error {
	if err := k.checkOwner("set keyframe position"); err != nil {
		return err
	}
	k.position = position
	if p := k.Property(); p != nil {
		p.sortKeyframes()
	}
	return nil
}

// Easing returns the easing used towards the next keyframe.
func (k *Keyframe[T]) Easing() easing.Function {
	return k.easing
}

// SetEasing changes the easing used towards the next keyframe.
func (k *Keyframe[T]) SetEasing(fn easing.Function) error {
	if err := k.checkOwner("set keyframe easing"); err != nil {
		return err
	}
	k.easing = fn
	return nil
}

// checkOwner fails once the owning property is disposed. Detached keyframes
// are always editable.
func (k *Keyframe[T]) checkOwner(op string) error {
	if p := k.Property(); p != nil {
		return p.check(op, false)
	}
	return nil
}

// Property returns the owning property, or nil when detached.
func (k *Keyframe[T]) Property() *Property[T] {
	return k.owner.Value()
}

// Remove detaches the keyframe from its owner.
func (k *Keyframe[T]) Remove() error {
	p := k.Property()
	if p == nil {
		return nil
	}
	return p.RemoveKeyframe(k)
}

// KeyframesSupported reports whether the property can use keyframes at all.
func (p *Property[T]) KeyframesSupported() bool {
	return p.keyframesSupported
}

// KeyframesEnabled reports whether keyframes are used by Update.
func (p *Property[T]) KeyframesEnabled() bool {
	return p.keyframesEnabled
}

// SetKeyframesEnabled toggles keyframes. The keyframes themselves are kept.
func (p *Property[T]) SetKeyframesEnabled(enabled bool) error {
	if err := p.check("set keyframes enabled", false); err != nil {
		return err
	}
	p.setKeyframesEnabled(enabled)
	return nil
}

func (p *Property[T]) setKeyframesEnabled(enabled bool) {
	if p.keyframesEnabled == enabled {
		return
	}
	p.keyframesEnabled = enabled
	p.emit(KeyframesToggled)
}

// Keyframes returns the keyframes sorted by position.
func (p *Property[T]) Keyframes() []*Keyframe[T] {
	return slices.Clone(p.keyframes)
}

// CurrentKeyframe returns the last keyframe at or before the position of the
// last update.
func (p *Property[T]) CurrentKeyframe() *Keyframe[T] {
	return p.currentKeyframe
}

// NextKeyframe returns the keyframe following CurrentKeyframe.
func (p *Property[T]) NextKeyframe() *Keyframe[T] {
	return p.nextKeyframe
}

// AddKeyframe attaches a keyframe, detaching it from any previous owner.
// Adding a keyframe that is already attached does nothing.
func (p *Property[T]) AddKeyframe(k *Keyframe[T]) error {
	const op = "add keyframe"
	if err := p.check(op, false); err != nil {
		return err
	}
	if k == nil {
		return newError(op, p.path, ErrInvalidArgument, nil, "keyframe is required")
	}
	p.addKeyframe(k)
	return nil
}

func (p *Property[T]) addKeyframe(k *Keyframe[T]) {
	if slices.Contains(p.keyframes, k) {
		return
	}
	if previous := k.Property(); previous != nil {
		previous.removeKeyframe(k)
	}

	k.owner = weak.Make(p)
	p.keyframes = append(p.keyframes, k)
	p.sortKeyframes()
	p.emit(KeyframeAdded)
}

// RemoveKeyframe detaches a keyframe. Removing a keyframe that is not
// attached to this property does nothing.
func (p *Property[T]) RemoveKeyframe(k *Keyframe[T]) error {
	if err := p.check("remove keyframe", false); err != nil {
		return err
	}
	p.removeKeyframe(k)
	return nil
}

func (p *Property[T]) removeKeyframe(k *Keyframe[T]) {
	i := slices.Index(p.keyframes, k)
	if i < 0 {
		return
	}

	p.keyframes = slices.Delete(p.keyframes, i, i+1)
	k.owner = weak.Pointer[Property[T]]{}
	if p.currentKeyframe == k || p.nextKeyframe == k {
		p.currentKeyframe, p.nextKeyframe = nil, nil
	}
	p.sortKeyframes()
	p.emit(KeyframeRemoved)
}

// SetKeyframeEasingAt changes the easing of the first keyframe at the given
// position. It reports whether such a keyframe exists.
func (p *Property[T]) SetKeyframeEasingAt(at time.Duration, fn easing.Function) (bool, error) {
	if err := p.check("set keyframe easing", false); err != nil {
		return false, err
	}
	k := p.keyframeAt(at)
	if k == nil {
		return false, nil
	}
	k.easing = fn
	return true, nil
}

func (p *Property[T]) keyframeAt(at time.Duration) *Keyframe[T] {
	for _, k := range p.keyframes {
		if k.position == at {
			return k
		}
	}
	return nil
}

// sortKeyframes keeps ties in their previous relative order.
func (p *Property[T]) sortKeyframes() {
	slices.SortStableFunc(p.keyframes, func(a, b *Keyframe[T]) int {
		return cmp.Compare(a.position, b.position)
	})
}

func (p *Property[T]) updateKeyframes(cursor Timeline) {
	if !p.keyframesSupported || !p.keyframesEnabled {
		p.currentKeyframe, p.nextKeyframe = nil, nil
		return
	}

	position := cursor.Position()
	current := -1
	for i, k := range p.keyframes {
		if k.position > position {
			break
		}
		current = i
	}

	p.currentKeyframe, p.nextKeyframe = nil, nil
	if current >= 0 {
		p.currentKeyframe = p.keyframes[current]
		if current+1 < len(p.keyframes) {
			p.nextKeyframe = p.keyframes[current+1]
		}
	}

	switch {
	case p.currentKeyframe == nil:
		if len(p.keyframes) > 0 {
			p.currentValue = p.keyframes[0].value
		}
	case p.nextKeyframe == nil:
		p.currentValue = p.currentKeyframe.value
	default:
		cur, next := p.currentKeyframe, p.nextKeyframe
		progress := float64(position-cur.position) / float64(next.position-cur.position)
		eased := easing.Interpolate(progress, cur.easing)
		p.currentValue = p.blend(cur.value, next.value, progress, eased)
	}
}
