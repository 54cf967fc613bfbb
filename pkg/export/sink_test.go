package export

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/errors"
)

func TestFileSink(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewFileSink(fs, "/out")

	require.NoError(t, sink.Write(context.Background(), Document{Name: "p/src/a.go", Text: "package a"}))
	data, err := afero.ReadFile(fs, "/out/p/src/a.go")
	require.NoError(t, err)
	assert.Equal(t, "package a", string(data))
}

func TestFileSinkReadOnly(t *testing.T) {
	sink := NewFileSink(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")
	err := sink.Write(context.Background(), Document{Name: "x.txt", Text: "x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportWrite))
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterSink{W: &buf}.Write(context.Background(), Document{Text: "hello"}))
	assert.Equal(t, "hello", buf.String())
}

func TestClipboardSink(t *testing.T) {
	orig := writeClipboard
	defer func() { writeClipboard = orig }()

	var got string
	writeClipboard = func(text string) error {
		got = text
		return nil
	}
	require.NoError(t, ClipboardSink{}.Write(context.Background(), Document{Text: "copied"}))
	assert.Equal(t, "copied", got)

	writeClipboard = func(string) error { return fmt.Errorf("no xclip") }
	err := ClipboardSink{}.Write(context.Background(), Document{Text: "x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrExportWrite))
}
