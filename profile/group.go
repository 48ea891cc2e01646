package profile

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/matt-g-everett/ledtx/property"
)

// Group holds the properties of a layer in the order they were added.
type Group struct {
	layer      *Layer
	properties []property.Animated
	byPath     map[string]property.Animated
	dirty      bool
	logger     *slog.Logger
}

func newGroup(layer *Layer, logger *slog.Logger) *Group {
	g := new(Group)
	g.layer = layer
	g.byPath = make(map[string]property.Animated)
	g.logger = logger
	return g
}

// Add initializes p against the layer's storage entity and adds it to the
// group under path.
func Add[T comparable](g *Group, path string, p *property.Property[T], description property.Description) error {
	if _, ok := g.byPath[path]; ok {
		return fmt.Errorf("layer %q already has a property %q", g.layer.Name(), path)
	}

	entity, created := g.layer.entity.GetOrCreateProperty(path)
	if err := p.Initialize(g.layer, g, entity, !created, description, path); err != nil {
		return fmt.Errorf("layer %q: %w", g.layer.Name(), err)
	}

	g.properties = append(g.properties, p)
	g.byPath[path] = p
	return nil
}

// OnCurrentValueSet implements property.Group.
func (g *Group) OnCurrentValueSet(path string) {
	g.dirty = true
	g.logger.Debug("property value set", "layer", g.layer.Name(), "path", path)
}

// Dirty reports whether a property value was set since the last Save.
func (g *Group) Dirty() bool {
	return g.dirty
}

// Lookup finds a property by path.
func (g *Group) Lookup(path string) (property.Animated, bool) {
	p, ok := g.byPath[path]
	return p, ok
}

// Properties returns the properties in the order they were added.
func (g *Group) Properties() []property.Animated {
	return append([]property.Animated(nil), g.properties...)
}

// Update recomputes every property against cursor.
func (g *Group) Update(cursor property.Timeline) error {
	var errs []error
	for _, p := range g.properties {
		if err := p.Update(cursor); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load restores every property from storage. Problems a property recovered
// from are returned as issues, not errors.
func (g *Group) Load() (issues []error, err error) {
	var errs []error
	for _, p := range g.properties {
		if err := p.Load(); err != nil {
			errs = append(errs, err)
			continue
		}
		issues = append(issues, p.LoadIssues()...)
	}
	g.dirty = false
	return issues, errors.Join(errs...)
}

// Save writes every property to the layer's storage entity.
func (g *Group) Save() error {
	var errs []error
	for _, p := range g.properties {
		if err := p.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		g.dirty = false
	}
	return errors.Join(errs...)
}

// Dispose disposes every property.
func (g *Group) Dispose() {
	for _, p := range g.properties {
		p.Dispose()
	}
}
