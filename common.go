package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/matt-g-everett/ledtx/datamodel"
	"github.com/matt-g-everett/ledtx/profile"
	"github.com/matt-g-everett/ledtx/storage"
	"github.com/matt-g-everett/ledtx/stream"
)

// workspace is a loaded profile ready to render.
type workspace struct {
	config  stream.Config
	repo    *storage.Repository
	model   *datamodel.Model
	profile *profile.Profile
	brushes []stream.Brush
}

// defaultProfile is used when the configured profile file does not exist yet.
func defaultProfile(name string) *storage.ProfileEntity {
	return &storage.ProfileEntity{
		Name: name,
		Layers: []*storage.LayerEntity{
			{Name: "background", Brush: stream.KindGradientTrail},
			{Name: "sparkle", Brush: stream.KindTwinkle},
		},
	}
}

func openWorkspace() (*workspace, error) {
	config, err := stream.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	w := &workspace{
		config: config,
		repo:   storage.NewRepository(config.ProfileDir),
		model:  datamodel.New(),
	}

	entity, err := w.repo.Load(config.Profile)
	if errors.Is(err, storage.ErrProfileNotFound) {
		slog.Info("profile not found, using default", "profile", config.Profile)
		entity = defaultProfile(config.Profile)
	} else if err != nil {
		return nil, err
	}

	w.profile = profile.New(entity, w.model,
		profile.WithTimelineLength(config.TimelineLength),
		profile.WithLoop(config.Loop),
		profile.WithLogger(slog.Default()))
	w.brushes, err = stream.NewBrushes(w.profile)
	if err != nil {
		return nil, err
	}
	slog.Info("profile loaded", "name", w.profile.Name(), "layers", len(w.brushes))
	return w, nil
}

// save writes the current property state back to the profile file.
func (w *workspace) save() error {
	if err := w.profile.Save(); err != nil {
		return fmt.Errorf("failed to save properties: %w", err)
	}
	if err := w.repo.Save(w.config.Profile, w.profile.Entity()); err != nil {
		return err
	}
	slog.Info("profile saved", "profile", w.config.Profile)
	return nil
}
