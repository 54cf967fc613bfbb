package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dirx/pkg/catalog"
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/logging"
)

// Store loads and saves the catalog.
type Store interface {
	// Load returns the stored catalog. The returned catalog is always usable:
	// missing state yields the built-in catalog, and unreadable or corrupt
	// state yields the built-in catalog together with an ErrStateLoad error.
	Load() (*catalog.Catalog, error)

	// Save replaces the stored state with c.
	Save(c *catalog.Catalog) error

	// Clear deletes the stored state. Clearing absent state is not an error.
	Clear() error

	// Path is where the state lives.
	Path() string
}

type fileStore struct {
	fs     afero.Fs
	path   string
	opts   []catalog.Option
	logger zerolog.Logger
}

// New creates a Store backed by a JSON file at path.
func New(fs afero.Fs, path string, opts ...catalog.Option) Store {
	return &fileStore{
		fs:     fs,
		path:   path,
		opts:   opts,
		logger: logging.GetLogger("store"),
	}
}

func (s *fileStore) Path() string { return s.path }

func (s *fileStore) Load() (*catalog.Catalog, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		s.logger.Debug().Str("path", s.path).Msg("no stored catalog, using defaults")
		return catalog.Default(s.opts...), nil
	}
	if err != nil {
		return catalog.Default(s.opts...), errors.Wrapf(err, errors.ErrStateLoad, "failed to read %s", s.path)
	}

	var st catalog.State
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("stored catalog is corrupt, using defaults")
		return catalog.Default(s.opts...), errors.Wrapf(err, errors.ErrStateLoad, "failed to parse %s", s.path)
	}
	c, err := catalog.FromState(st, s.opts...)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("stored catalog is inconsistent, using defaults")
		return catalog.Default(s.opts...), errors.Wrapf(err, errors.ErrStateLoad, "failed to restore %s", s.path)
	}

	s.logger.Debug().Str("path", s.path).Int("version", st.Version).Msg("catalog loaded")
	return c, nil
}

func (s *fileStore) Save(c *catalog.Catalog) error {
	data, err := json.MarshalIndent(c.State(), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "failed to encode catalog")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to create %s", filepath.Dir(s.path))
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to replace %s", s.path)
	}

	s.logger.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("catalog saved")
	return nil
}

func (s *fileStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to remove %s", s.path)
	}
	s.logger.Info().Str("path", s.path).Msg("stored catalog cleared")
	return nil
}
