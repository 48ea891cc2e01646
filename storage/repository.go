package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// ErrProfileNotFound is returned when a profile file does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Repository reads and writes profile files.
type Repository struct {
	dir string
}

// NewRepository creates a repository rooted at dir. Relative profile names are
// resolved against it.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) resolve(name string) string {
	if filepath.IsAbs(name) || r.dir == "" {
		return name
	}
	return filepath.Join(r.dir, name)
}

// Load reads a profile file.
func (r *Repository) Load(name string) (*ProfileEntity, error) {
	path := r.resolve(name)

	//nolint:gosec // G304: profile path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile ProfileEntity
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &profile, nil
}

// Save writes a profile file, replacing any previous contents. The file is
// written to a temporary sibling first and renamed into place.
func (r *Repository) Save(name string, profile *ProfileEntity) error {
	path := r.resolve(name)

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile %s: %w", profile.Name, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace profile %s: %w", path, err)
	}
	return nil
}
