// Package profile organises animated properties into layers and persists
// them as profiles.
package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matt-g-everett/ledtx/datamodel"
	"github.com/matt-g-everett/ledtx/storage"
)

// DefaultTimelineLength is used for layers stored without a timeline length.
const DefaultTimelineLength = 10 * time.Second

// Profile is a named set of layers rendered on top of each other.
type Profile struct {
	entity *storage.ProfileEntity
	layers []*Layer
	logger *slog.Logger
}

// Option configures a Profile.
type Option func(*options)

type options struct {
	length time.Duration
	loop   bool
	logger *slog.Logger
}

// WithTimelineLength sets the timeline length of layers that have none stored.
func WithTimelineLength(length time.Duration) Option {
	return func(o *options) {
		o.length = length
	}
}

// WithLoop makes layer timelines wrap around at the end.
func WithLoop(loop bool) Option {
	return func(o *options) {
		o.loop = loop
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a profile from its storage entity. Properties are added to the
// layers by their brushes; call Load once they are all in place.
func New(entity *storage.ProfileEntity, model *datamodel.Model, opts ...Option) *Profile {
	o := options{length: DefaultTimelineLength, loop: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	p := new(Profile)
	p.entity = entity
	p.logger = o.logger
	for _, le := range entity.Layers {
		p.layers = append(p.layers, NewLayer(le, model, o.length, o.loop, o.logger))
	}
	return p
}

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.entity.Name
}

// Entity returns the storage entity the profile saves into.
func (p *Profile) Entity() *storage.ProfileEntity {
	return p.entity
}

// Layers returns the layers in render order.
func (p *Profile) Layers() []*Layer {
	return append([]*Layer(nil), p.layers...)
}

// Layer finds a layer by name.
func (p *Profile) Layer(name string) (*Layer, bool) {
	for _, l := range p.layers {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// Load restores every property. Recovered problems are logged.
func (p *Profile) Load() error {
	var errs []error
	for _, l := range p.layers {
		issues, err := l.group.Load()
		if err != nil {
			errs = append(errs, fmt.Errorf("layer %q: %w", l.Name(), err))
		}
		if len(issues) > 0 {
			p.logger.Warn("profile loaded with issues", "profile", p.Name(), "layer", l.Name(), "issues", len(issues))
		}
	}
	return errors.Join(errs...)
}

// Update advances every layer by delta.
func (p *Profile) Update(delta time.Duration) error {
	var errs []error
	for _, l := range p.layers {
		if err := l.Update(delta); err != nil {
			errs = append(errs, fmt.Errorf("layer %q: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Seek moves every layer to position.
func (p *Profile) Seek(position time.Duration) error {
	var errs []error
	for _, l := range p.layers {
		if err := l.Seek(position); err != nil {
			errs = append(errs, fmt.Errorf("layer %q: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Dirty reports whether any property value was set since the last save.
func (p *Profile) Dirty() bool {
	for _, l := range p.layers {
		if l.group.Dirty() {
			return true
		}
	}
	return false
}

// Save writes every property into the storage entity.
func (p *Profile) Save() error {
	var errs []error
	for _, l := range p.layers {
		if err := l.group.Save(); err != nil {
			errs = append(errs, fmt.Errorf("layer %q: %w", l.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Dispose disposes every property of every layer.
func (p *Profile) Dispose() {
	for _, l := range p.layers {
		l.group.Dispose()
	}
}
