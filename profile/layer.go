package profile

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/matt-g-everett/ledtx/datamodel"
	"github.com/matt-g-everett/ledtx/property"
	"github.com/matt-g-everett/ledtx/storage"
	"github.com/matt-g-everett/ledtx/timeline"
)

// Layer is one element of a profile: a brush, its properties and the
// timeline they are animated on.
type Layer struct {
	entity   *storage.LayerEntity
	timeline *timeline.Timeline
	model    *datamodel.Model
	group    *Group
}

// NewLayer creates a layer stored in entity. A zero timeline length in the
// entity is replaced by defaultLength.
func NewLayer(entity *storage.LayerEntity, model *datamodel.Model, defaultLength time.Duration, loop bool, logger *slog.Logger) *Layer {
	if entity.TimelineLength <= 0 {
		entity.TimelineLength = defaultLength
	}
	if logger == nil {
		logger = slog.Default()
	}

	l := new(Layer)
	l.entity = entity
	l.timeline = timeline.New(entity.TimelineLength, loop)
	l.model = model
	l.group = newGroup(l, logger)
	return l
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.entity.Name
}

// Brush returns the kind of brush that renders the layer.
func (l *Layer) Brush() string {
	return l.entity.Brush
}

// Properties returns the property group of the layer.
func (l *Layer) Properties() *Group {
	return l.group
}

// Clock returns the concrete timeline of the layer.
func (l *Layer) Clock() *timeline.Timeline {
	return l.timeline
}

// Timeline implements property.Element.
func (l *Layer) Timeline() property.Timeline {
	return l.timeline
}

// DataModel implements property.Element.
func (l *Layer) DataModel() property.DataModel {
	if l.model == nil {
		return nil
	}
	return dataModel{model: l.model}
}

// Update advances the timeline by delta and recomputes every property.
func (l *Layer) Update(delta time.Duration) error {
	l.timeline.Update(delta)
	return l.group.Update(l.timeline)
}

// Seek moves the timeline to position and recomputes every property.
func (l *Layer) Seek(position time.Duration) error {
	l.timeline.JumpTo(position)
	return l.group.Update(l.timeline)
}

type dataModel struct {
	model *datamodel.Model
}

func (d dataModel) Compile(expression string, kind reflect.Kind) (property.Expression, error) {
	p, err := d.model.Compile(expression, kind)
	if err != nil {
		return nil, err
	}
	return p, nil
}
