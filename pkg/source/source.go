// Package source supplies raw trees and file text. FS walks a directory
// through afero; Fixture serves an in-memory tree described in YAML.
package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/tree"
)

// Source lists a raw tree and reads file text on demand.
type Source interface {
	// Tree returns the unfiltered listing. Files are unhydrated and carry a
	// reference that ReadText understands.
	Tree(ctx context.Context) (*tree.Tree, error)

	// ReadText returns the text behind a file reference.
	ReadText(ctx context.Context, ref string) (string, error)
}

// FS reads a directory tree from an afero filesystem.
type FS struct {
	fs     afero.Fs
	root   string
	logger zerolog.Logger
}

// NewFS creates a Source rooted at root. The root directory becomes the
// single root node of the tree.
func NewFS(fs afero.Fs, root string) *FS {
	return &FS{
		fs:     fs,
		root:   filepath.Clean(root),
		logger: logging.GetLogger("source"),
	}
}

// Tree walks the root directory. Entries are listed directories first, then
// by name. Symlinks and other irregular files are skipped.
func (s *FS) Tree(ctx context.Context) (*tree.Tree, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceRead, "cannot open %s", s.root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", s.root)
	}

	b := tree.NewBuilder()
	rootID, err := b.AddDir(tree.NoParent, rootName(s.root))
	if err != nil {
		return nil, err
	}
	count := 0
	if err := s.walk(ctx, b, rootID, s.root, &count); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("root", s.root).Int("entries", count).Msg("directory listed")
	return b.Build(), nil
}

func (s *FS) walk(ctx context.Context, b *tree.Builder, parent tree.NodeID, dir string, count *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "cannot list %s", dir)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		li, lj := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if li != lj {
			return li < lj
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			id, err := b.AddDir(parent, e.Name())
			if err != nil {
				return err
			}
			*count++
			if err := s.walk(ctx, b, id, full, count); err != nil {
				return err
			}
		case e.Mode().IsRegular():
			if _, err := b.AddFile(parent, e.Name(), full); err != nil {
				return err
			}
			*count++
		default:
			s.logger.Trace().Str("path", full).Msg("skipping irregular file")
		}
	}
	return nil
}

// ReadText reads a file listed by Tree.
func (s *FS) ReadText(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(s.fs, ref)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSourceRead, "cannot read %s", ref)
	}
	return string(data), nil
}

func rootName(root string) string {
	name := filepath.Base(root)
	if name == string(os.PathSeparator) || name == "." || name == "" {
		return "root"
	}
	return name
}
