// Package storage defines the persisted shape of profiles and their animated
// properties, and reads and writes them as YAML documents.
package storage

import "time"

// ProfileEntity is the root of a profile file.
type ProfileEntity struct {
	Name   string         `yaml:"name"`
	Layers []*LayerEntity `yaml:"layers"`
}

// LayerEntity stores one profile element together with its properties.
type LayerEntity struct {
	Name           string            `yaml:"name"`
	Brush          string            `yaml:"brush"`
	TimelineLength time.Duration     `yaml:"timeline_length"`
	Properties     []*PropertyEntity `yaml:"properties,omitempty"`
}

// PropertyEntity stores the authored state of one animated property.
type PropertyEntity struct {
	Path                string              `yaml:"path"`
	Value               *string             `yaml:"value,omitempty"`
	KeyframesEnabled    bool                `yaml:"keyframes_enabled"`
	KeyframeEntities    []KeyframeEntity    `yaml:"keyframes,omitempty"`
	DataBindingEntities []DataBindingEntity `yaml:"data_bindings,omitempty"`
}

// KeyframeEntity stores a single keyframe. EasingFunction is the integer code
// of an easing.Function.
type KeyframeEntity struct {
	Value          string        `yaml:"value"`
	Position       time.Duration `yaml:"position"`
	EasingFunction int           `yaml:"easing"`
}

// DataBindingEntity stores an active data binding. Identifier is the member
// path of the registration the binding belongs to.
type DataBindingEntity struct {
	Identifier string `yaml:"identifier"`
	Expression string `yaml:"expression"`
}

// Layer returns the layer with the given name, or nil.
func (p *ProfileEntity) Layer(name string) *LayerEntity {
	for _, l := range p.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Property returns the property entity stored under path, or nil.
func (l *LayerEntity) Property(path string) *PropertyEntity {
	for _, p := range l.Properties {
		if p.Path == path {
			return p
		}
	}
	return nil
}

// GetOrCreateProperty returns the property entity stored under path, creating
// an empty one if none exists. created reports whether a new entity was added.
func (l *LayerEntity) GetOrCreateProperty(path string) (entity *PropertyEntity, created bool) {
	if e := l.Property(path); e != nil {
		return e, false
	}
	e := &PropertyEntity{Path: path}
	l.Properties = append(l.Properties, e)
	return e, true
}

// DataBinding returns the data binding entity with the given identifier, or nil.
func (e *PropertyEntity) DataBinding(identifier string) *DataBindingEntity {
	for i := range e.DataBindingEntities {
		if e.DataBindingEntities[i].Identifier == identifier {
			return &e.DataBindingEntities[i]
		}
	}
	return nil
}
