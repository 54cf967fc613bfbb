package hydrate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/hydrate"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// recordingSource serves text from a map and records every read.
type recordingSource struct {
	mu    sync.Mutex
	texts map[string]string
	reads []string
}

func (s *recordingSource) Tree(context.Context) (*tree.Tree, error) { return nil, nil }

func (s *recordingSource) ReadText(_ context.Context, ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads = append(s.reads, ref)
	text, ok := s.texts[ref]
	if !ok {
		return "", errors.Newf(errors.ErrSourceRead, "missing %s", ref)
	}
	return text, nil
}

func TestHydrate(t *testing.T) {
	src := &recordingSource{texts: map[string]string{
		"p/a.go":  "package a\n\nfunc A() {}",
		"p/b.txt": "",
	}}
	raw := tree.MustFromPaths("p/a.go", "p/b.txt", "p/logo.PNG", "p/gone.txt")
	h := hydrate.New(src, 2, map[string]bool{".png": true})

	out, stats, err := h.Hydrate(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, hydrate.Stats{Loaded: 2, NoLines: 1, Failed: 1}, stats)

	a, _ := out.Get("p/a.go")
	assert.Equal(t, tree.Hydrated{Text: "package a\n\nfunc A() {}", Lines: 3}, a.Content)

	b, _ := out.Get("p/b.txt")
	assert.Equal(t, 1, b.TotalLines())

	logo, _ := out.Get("p/logo.PNG")
	assert.Equal(t, tree.Hydrated{Text: hydrate.NoLinesPlaceholder}, logo.Content)
	require.NotNil(t, logo.LineLimitOverride)
	assert.Equal(t, types.NoLines, logo.LineLimitOverride.Mode)

	gone, _ := out.Get("p/gone.txt")
	assert.Equal(t, tree.Hydrated{Text: hydrate.ReadErrorPlaceholder}, gone.Content)

	assert.NotContains(t, src.reads, "p/logo.PNG")

	// the input tree is untouched
	orig, _ := raw.Get("p/a.go")
	assert.Equal(t, tree.Unhydrated{Ref: "p/a.go"}, orig.Content)
}

func TestHydrateOnlyReadsPresentFiles(t *testing.T) {
	src := &recordingSource{texts: map[string]string{"p/keep.txt": "k"}}
	raw := tree.MustFromPaths("p/keep.txt", "p/drop/secret.txt")
	pruned := raw.Filter(func(n tree.Node) bool { return n.ID != "p/drop" })

	_, _, err := hydrate.New(src, 4, nil).Hydrate(context.Background(), pruned)
	require.NoError(t, err)
	assert.Equal(t, []string{"p/keep.txt"}, src.reads)
}

func TestHydrateSkipsHydratedFiles(t *testing.T) {
	src := &recordingSource{}
	raw := tree.MustFromPaths("p/a.txt")
	require.NoError(t, raw.SetContent("p/a.txt", tree.Hydrated{Text: "x", Lines: 1}))

	_, stats, err := hydrate.New(src, 1, nil).Hydrate(context.Background(), raw)
	require.NoError(t, err)
	assert.Empty(t, src.reads)
	assert.Equal(t, hydrate.Stats{}, stats)
}

func TestHydrateCancelled(t *testing.T) {
	src := &recordingSource{texts: map[string]string{"p/a.txt": "a"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := hydrate.New(src, 1, nil).Hydrate(ctx, tree.MustFromPaths("p/a.txt"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestIsNoLines(t *testing.T) {
	h := hydrate.New(nil, 0, map[string]bool{".tar.gz": true, ".ds_store": true})
	assert.True(t, h.IsNoLines("release.TAR.GZ"))
	assert.True(t, h.IsNoLines(".DS_Store"))
	assert.False(t, h.IsNoLines("notes.txt"))
}
