package export

import (
	"context"
	"io"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"

	"github.com/arthur-debert/dirx/pkg/errors"
)

// Sink delivers a rendered document.
type Sink interface {
	Write(ctx context.Context, doc Document) error
}

// FileSink writes documents under a directory, using their names as
// relative paths.
type FileSink struct {
	fs  afero.Fs
	dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(fs afero.Fs, dir string) *FileSink {
	return &FileSink{fs: fs, dir: dir}
}

// PathFor returns where doc would be written.
func (s *FileSink) PathFor(doc Document) string {
	return filepath.Join(s.dir, filepath.FromSlash(doc.Name))
}

func (s *FileSink) Write(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.PathFor(doc)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrExportWrite, "failed to create %s", filepath.Dir(path))
	}
	if err := afero.WriteFile(s.fs, path, []byte(doc.Text), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrExportWrite, "failed to write %s", path)
	}
	return nil
}

// WriterSink copies document text to a writer, e.g. stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Write(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(s.W, doc.Text); err != nil {
		return errors.Wrap(err, errors.ErrExportWrite, "failed to write export")
	}
	return nil
}

// writeClipboard is swapped in tests; the real clipboard needs a display.
var writeClipboard = clipboard.WriteAll

// ClipboardSink puts document text on the system clipboard.
type ClipboardSink struct{}

func (ClipboardSink) Write(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeClipboard(doc.Text); err != nil {
		return errors.Wrap(err, errors.ErrExportWrite, "failed to copy export to clipboard")
	}
	return nil
}
