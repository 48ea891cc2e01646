package property

import (
	"errors"
	"reflect"
	"time"

	"github.com/matt-g-everett/ledtx/storage"
)

type fakeTimeline struct {
	position    time.Duration
	length      time.Duration
	overridden  bool
	clearDeltas int
}

func (t *fakeTimeline) Position() time.Duration { return t.position }
func (t *fakeTimeline) Length() time.Duration   { return t.length }
func (t *fakeTimeline) IsOverridden() bool      { return t.overridden }
func (t *fakeTimeline) ClearDelta()             { t.clearDeltas++ }

type fakeExpression struct {
	eval func(position, length time.Duration) (interface{}, error)
}

func (e fakeExpression) Evaluate(position, length time.Duration) (interface{}, error) {
	return e.eval(position, length)
}

// fakeModel resolves expressions from a fixed table of values.
type fakeModel struct {
	values map[string]interface{}
	kinds  []reflect.Kind
}

func (m *fakeModel) Compile(expression string, kind reflect.Kind) (Expression, error) {
	m.kinds = append(m.kinds, kind)
	if expression == "broken(" {
		return nil, errors.New("syntax error")
	}
	return fakeExpression{eval: func(time.Duration, time.Duration) (interface{}, error) {
		v, ok := m.values[expression]
		if !ok {
			return nil, errors.New("undefined: " + expression)
		}
		return v, nil
	}}, nil
}

type fakeElement struct {
	timeline *fakeTimeline
	model    *fakeModel
}

func (e *fakeElement) Timeline() Timeline {
	return e.timeline
}

func (e *fakeElement) DataModel() DataModel {
	if e.model == nil {
		return nil
	}
	return e.model
}

type fakeGroup struct {
	currentValueSet []string
}

func (g *fakeGroup) OnCurrentValueSet(path string) {
	g.currentValueSet = append(g.currentValueSet, path)
}

type harness struct {
	element *fakeElement
	group   *fakeGroup
	entity  *storage.PropertyEntity
}

func newHarness() *harness {
	return &harness{
		element: &fakeElement{
			timeline: &fakeTimeline{length: 10 * time.Second},
			model:    &fakeModel{values: map[string]interface{}{}},
		},
		group:  &fakeGroup{},
		entity: &storage.PropertyEntity{Path: "brightness"},
	}
}

func lerp(from, to float64, _, eased float64) float64 {
	return from + (to-from)*eased
}

// newFloat creates an initialized float property driven by h.
func newFloat(h *harness, defaultValue float64, opts ...Option[float64]) *Property[float64] {
	opts = append([]Option[float64]{WithInterpolator(lerp)}, opts...)
	p := New(defaultValue, opts...)
	if err := p.Initialize(h.element, h.group, h.entity, false, Description{Name: "Brightness"}, "brightness"); err != nil {
		panic(err)
	}
	return p
}

type vec struct {
	X float64
	Y float64
}

func (v vec) Interpolate(to vec, _, eased float64) vec {
	return vec{X: v.X + (to.X-v.X)*eased, Y: v.Y + (to.Y-v.Y)*eased}
}

func newVec(h *harness) *Property[vec] {
	p := New(vec{})
	if err := p.Initialize(h.element, h.group, h.entity, false, Description{Name: "Position"}, "position"); err != nil {
		panic(err)
	}
	return p
}

func at(d time.Duration) *time.Duration {
	return &d
}
