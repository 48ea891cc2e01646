package property

import (
	"reflect"
	"time"
)

// Timeline is the playhead a property is updated against.
type Timeline interface {
	Position() time.Duration
	Length() time.Duration
	// IsOverridden reports whether the position is being edited, in which
	// case data bindings are not applied.
	IsOverridden() bool
	// ClearDelta is called before an update forced outside the frame loop.
	ClearDelta()
}

// Element is the profile element that owns a property.
type Element interface {
	Timeline() Timeline
	DataModel() DataModel
}

// Group is the property group that owns a property.
type Group interface {
	OnCurrentValueSet(path string)
}

// DataModel compiles data binding expressions. kind is the reflect.Kind the
// binding needs the result in.
type DataModel interface {
	Compile(expression string, kind reflect.Kind) (Expression, error)
}

// Expression is a compiled data binding expression.
type Expression interface {
	Evaluate(position, length time.Duration) (interface{}, error)
}

// Description holds the authored metadata of a property.
type Description struct {
	Name             string
	Description      string
	InputAffix       string
	DisableKeyframes bool
	Hidden           bool
}
