// Package timeline implements the playhead that drives keyframe animation.
package timeline

import "time"

// Timeline tracks a playhead position within a fixed length. It is advanced
// once per frame by the rendering loop and can be overridden while a position
// is being edited.
type Timeline struct {
	position   time.Duration
	length     time.Duration
	delta      time.Duration
	loop       bool
	overridden bool
}

// New creates a timeline of the given length.
func New(length time.Duration, loop bool) *Timeline {
	t := new(Timeline)
	t.length = length
	t.loop = loop
	return t
}

// Position returns the current playhead position.
func (t *Timeline) Position() time.Duration {
	return t.position
}

// Length returns the timeline length.
func (t *Timeline) Length() time.Duration {
	return t.length
}

// SetLength changes the timeline length, pulling the playhead back if needed.
func (t *Timeline) SetLength(length time.Duration) {
	if length < 0 {
		length = 0
	}
	t.length = length
	if t.position > length {
		t.position = length
	}
}

// Delta returns the distance the playhead moved during the last update.
func (t *Timeline) Delta() time.Duration {
	return t.delta
}

// ClearDelta forgets the movement of the last update. Values reapplied outside
// the regular frame cadence must not be treated as time passing.
func (t *Timeline) ClearDelta() {
	t.delta = 0
}

// IsOverridden reports whether the playhead is being positioned manually.
func (t *Timeline) IsOverridden() bool {
	return t.overridden
}

// IsFinished reports whether a non-looping timeline reached its end.
func (t *Timeline) IsFinished() bool {
	return !t.loop && t.position >= t.length
}

// Update advances the playhead by delta. Looping timelines wrap around,
// others stop at the end. Overridden timelines do not move.
func (t *Timeline) Update(delta time.Duration) {
	if t.overridden {
		t.delta = 0
		return
	}

	previous := t.position
	t.position += delta
	if t.position >= t.length {
		if t.loop && t.length > 0 {
			t.position %= t.length
		} else {
			t.position = t.length
		}
	}
	if t.position < 0 {
		t.position = 0
	}
	t.delta = t.position - previous
}

// Override puts the timeline in edit mode at the given position. Data bindings
// are not applied while overridden.
func (t *Timeline) Override(position time.Duration) {
	t.overridden = true
	t.JumpTo(position)
}

// ClearOverride leaves edit mode, keeping the current position.
func (t *Timeline) ClearOverride() {
	t.overridden = false
	t.delta = 0
}

// JumpTo moves the playhead without treating the jump as elapsed time.
func (t *Timeline) JumpTo(position time.Duration) {
	if position < 0 {
		position = 0
	}
	if position > t.length {
		position = t.length
	}
	t.position = position
	t.delta = 0
}
