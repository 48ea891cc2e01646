package property

import (
	"fmt"
	"math"
	"slices"
	"time"
	"weak"

	"github.com/matt-g-everett/ledtx/easing"
	"github.com/matt-g-everett/ledtx/storage"
)

// Load restores the property from its storage entity.
//
// A single unreadable property must not break the profile it belongs to, so
// decoding problems are not returned. Instead:
//   - an unreadable base value falls back to the default value,
//   - an unreadable keyframe discards the whole stored keyframe batch,
//   - a data binding that cannot be recreated is skipped.
//
// Each of these is logged and available from LoadIssues until the next Load.
// Keyframes positioned past the end of the timeline are dropped.
func (p *Property[T]) Load() error {
	if err := p.check("load", true); err != nil {
		return err
	}
	p.loadIssues = nil

	p.loadBaseValue()
	p.currentValue = p.baseValue
	p.setKeyframesEnabled(p.entity.KeyframesEnabled)
	p.loadKeyframes()
	p.loadDataBindings()
	return nil
}

func (p *Property[T]) loadBaseValue() {
	if !p.loadedFromStorage || p.entity.Value == nil {
		p.baseValue = p.defaultValue
		return
	}

	var value T
	if err := storage.Decode(*p.entity.Value, &value); err != nil {
		p.issue("ignored unreadable stored value", err)
		p.baseValue = p.defaultValue
		return
	}
	p.baseValue = value
}

func (p *Property[T]) loadKeyframes() {
	for _, k := range p.keyframes {
		k.owner = weak.Pointer[Property[T]]{}
	}
	p.keyframes = nil
	p.currentKeyframe, p.nextKeyframe = nil, nil

	length := time.Duration(math.MaxInt64)
	if tl := p.element.Timeline(); tl != nil {
		length = tl.Length()
	}
	batch := make([]*Keyframe[T], 0, len(p.entity.KeyframeEntities))
	for i, stored := range p.entity.KeyframeEntities {
		if stored.Position > length {
			continue
		}

		var value T
		if err := storage.Decode(stored.Value, &value); err != nil {
			p.issue("ignored unreadable stored keyframes", fmt.Errorf("keyframe %d: %w", i, err))
			return
		}
		batch = append(batch, NewKeyframe(value, stored.Position, easing.Function(stored.EasingFunction)))
	}

	for _, k := range batch {
		k.owner = weak.Make(p)
	}
	p.keyframes = batch
	p.sortKeyframes()
}

func (p *Property[T]) loadDataBindings() {
	for _, b := range p.dataBindings {
		b.dispose()
	}
	p.dataBindings = nil

	for _, r := range p.registrations {
		b, err := r.createBinding(p.entity)
		if err != nil {
			p.issue("ignored unusable stored data binding", fmt.Errorf("member %q: %w", r.Member(), err))
			continue
		}
		if b != nil {
			p.dataBindings = append(p.dataBindings, b)
		}
	}
}

func (p *Property[T]) issue(msg string, err error) {
	p.loadIssues = append(p.loadIssues, err)
	p.logger.Warn(msg, "path", p.path, "error", err)
}

// LoadIssues returns the problems ignored by the last Load.
func (p *Property[T]) LoadIssues() []error {
	return slices.Clone(p.loadIssues)
}

// Save writes the base value, keyframes and data bindings to the storage
// entity, replacing its previous contents.
func (p *Property[T]) Save() error {
	const op = "save"
	if err := p.check(op, true); err != nil {
		return err
	}

	value, err := storage.Encode(p.baseValue)
	if err != nil {
		return newError(op, p.path, ErrInvalidArgument, err, "cannot store %s", p.ValueType())
	}

	keyframes := make([]storage.KeyframeEntity, 0, len(p.keyframes))
	for _, k := range p.keyframes {
		payload, err := storage.Encode(k.value)
		if err != nil {
			return newError(op, p.path, ErrInvalidArgument, err, "cannot store keyframe at %s", k.position)
		}
		keyframes = append(keyframes, storage.KeyframeEntity{
			Value:          payload,
			Position:       k.position,
			EasingFunction: int(k.easing),
		})
	}

	p.entity.Value = &value
	p.entity.KeyframesEnabled = p.keyframesEnabled
	p.entity.KeyframeEntities = keyframes
	p.entity.DataBindingEntities = nil
	for _, b := range p.dataBindings {
		b.save(p.entity)
	}
	return nil
}
