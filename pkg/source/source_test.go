package source_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/source"
	"github.com/arthur-debert/dirx/pkg/tree"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestFSTree(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/work/proj/README.md":   "# proj",
		"/work/proj/src/main.go": "package main",
		"/work/proj/Zeta.txt":    "z",
		"/work/proj/alpha.txt":   "a",
	})
	require.NoError(t, fs.MkdirAll("/work/proj/empty", 0755))

	src := source.NewFS(fs, "/work/proj")
	tr, err := src.Tree(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []tree.NodeID{"proj"}, tr.Roots())
	assert.Equal(t, []tree.NodeID{"proj/empty", "proj/src", "proj/alpha.txt", "proj/README.md", "proj/Zeta.txt"},
		tr.Children("proj"))

	n, ok := tr.Get("proj/src/main.go")
	require.True(t, ok)
	assert.Equal(t, tree.Unhydrated{Ref: "/work/proj/src/main.go"}, n.Content)

	text, err := src.ReadText(context.Background(), "/work/proj/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main", text)
}

func TestFSErrors(t *testing.T) {
	fs := memFS(t, map[string]string{"/file.txt": "x"})

	_, err := source.NewFS(fs, "/missing").Tree(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRead))

	_, err = source.NewFS(fs, "/file.txt").Tree(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = source.NewFS(fs, "/").ReadText(context.Background(), "/nope.txt")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRead))
}

func TestFSTreeHonoursCancellation(t *testing.T) {
	fs := memFS(t, map[string]string{"/proj/a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.NewFS(fs, "/proj").Tree(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFixture(t *testing.T) {
	fx, err := source.ParseFixture([]byte(`
root: demo
files:
  src/main.go: |
    package main
  build/: ""
  notes.txt: hello
`))
	require.NoError(t, err)

	tr, err := fx.Tree(context.Background())
	require.NoError(t, err)
	assert.True(t, tr.Has("demo/build"))
	n, _ := tr.Get("demo/build")
	assert.True(t, n.IsDir())

	text, err := fx.ReadText(context.Background(), "demo/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", text)

	_, err = fx.ReadText(context.Background(), "demo/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRead))
}

func TestParseFixtureDefaultsRoot(t *testing.T) {
	fx, err := source.ParseFixture([]byte("files:\n  a.txt: a\n"))
	require.NoError(t, err)
	assert.Equal(t, "root", fx.Root)

	_, err = source.ParseFixture([]byte("files: [not, a, map]"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
