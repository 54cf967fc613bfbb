// Test Type: Unit Test
// Description: Tests for the arena tree, its builder and mutators

package tree

import (
	"testing"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *Tree {
	t.Helper()
	tr, err := FromPaths(
		"root/.git/config",
		"root/src/main.go",
		"root/src/lib/util.go",
		"root/README.md",
		"root/empty/",
	)
	require.NoError(t, err)
	return tr
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	root, err := b.AddDir(NoParent, "proj")
	require.NoError(t, err)
	src, err := b.AddDir(root, "src")
	require.NoError(t, err)
	file, err := b.AddFile(src, "a.go", "")
	require.NoError(t, err)

	t.Run("duplicate_child_rejected", func(t *testing.T) {
		_, err := b.AddFile(src, "a.go", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("file_parent_rejected", func(t *testing.T) {
		_, err := b.AddFile(file, "x", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown_parent_rejected", func(t *testing.T) {
		_, err := b.AddDir("nope", "x")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("duplicate_root_gets_suffix", func(t *testing.T) {
		id, err := b.AddDir(NoParent, "proj")
		require.NoError(t, err)
		assert.Equal(t, NodeID("proj#2"), id)

		child, err := b.AddFile(id, "a.go", "")
		require.NoError(t, err)
		assert.Equal(t, NodeID("proj#2/a.go"), child)
	})

	tr := b.Build()
	assert.Equal(t, NodeID("proj/src/a.go"), file)
	n, ok := tr.Get(file)
	require.True(t, ok)
	assert.Equal(t, "a.go", n.Name)
	assert.Equal(t, "proj/src/a.go", n.Path)
	assert.Equal(t, Unhydrated{Ref: "proj/src/a.go"}, n.Content)
	assert.Equal(t, []NodeID{"proj", "proj#2"}, tr.Roots())

	dup, ok := tr.Get("proj#2/a.go")
	require.True(t, ok)
	assert.Equal(t, "proj/a.go", dup.Path)
}

func TestNavigation(t *testing.T) {
	tr := sampleTree(t)

	assert.Equal(t, []NodeID{"root/.git", "root/src", "root/README.md", "root/empty"}, tr.Children("root"))
	parent, ok := tr.Parent("root/src/lib/util.go")
	require.True(t, ok)
	assert.Equal(t, NodeID("root/src/lib"), parent)
	_, ok = tr.Parent("root")
	assert.False(t, ok)

	assert.Equal(t, []NodeID{"root/src/main.go", "root/src/lib/util.go"}, tr.DescendantFiles("root/src"))
	assert.Empty(t, tr.DescendantFiles("root/empty"))
	assert.Len(t, tr.Files(), 4)
}

func TestWalkSkipsSubtree(t *testing.T) {
	tr := sampleTree(t)

	var seen []NodeID
	tr.Walk(func(n Node, depth int) bool {
		seen = append(seen, n.ID)
		return n.ID != "root/src"
	})

	assert.Contains(t, seen, NodeID("root/src"))
	assert.NotContains(t, seen, NodeID("root/src/main.go"))
	assert.Contains(t, seen, NodeID("root/README.md"))
}

func TestMutators(t *testing.T) {
	tr := sampleTree(t)

	require.NoError(t, tr.SetSelected("root/README.md", true))
	assert.Equal(t, map[NodeID]bool{"root/README.md": true}, tr.SelectedIDs())

	err := tr.SetSelected("root/src", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	err = tr.SetSelected("missing", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	ll := &types.LineLimit{Mode: types.HeadN, Params: types.LimitParams{N: 3}}
	require.NoError(t, tr.SetLineLimitOverride("root/README.md", ll))
	ll.Params.N = 99
	n, _ := tr.Get("root/README.md")
	assert.Equal(t, 3, n.LineLimitOverride.Params.N, "override is copied on set")

	require.NoError(t, tr.SetLineLimitOverride("root/README.md", nil))
	n, _ = tr.Get("root/README.md")
	assert.Nil(t, n.LineLimitOverride)

	require.NoError(t, tr.SetContent("root/README.md", Hydrated{Text: "a\nb", Lines: 2}))
	n, _ = tr.Get("root/README.md")
	text, ok := n.Text()
	assert.True(t, ok)
	assert.Equal(t, "a\nb", text)
	assert.Equal(t, 2, n.TotalLines())

	tr.ApplySelection(map[NodeID]bool{"root/src/main.go": true})
	assert.Equal(t, map[NodeID]bool{"root/src/main.go": true}, tr.SelectedIDs())
}

func TestCloneIsIndependent(t *testing.T) {
	tr := sampleTree(t)
	require.NoError(t, tr.SetCompressionOverride("root/src/main.go", &types.CompressionFlags{RemoveComments: true}))

	cp := tr.Clone()
	assert.Equal(t, tr, cp)

	require.NoError(t, cp.SetSelected("root/src/main.go", true))
	require.NoError(t, cp.SetCompressionOverride("root/src/main.go", nil))

	orig, _ := tr.Get("root/src/main.go")
	assert.False(t, orig.Selected)
	require.NotNil(t, orig.CompressionOverride)
	assert.True(t, orig.CompressionOverride.RemoveComments)
}

func TestGetReturnsCopy(t *testing.T) {
	tr := sampleTree(t)
	require.NoError(t, tr.SetCompressionOverride("root/src/main.go", &types.CompressionFlags{Minify: true}))

	n, _ := tr.Get("root/src/main.go")
	n.CompressionOverride.Minify = false

	again, _ := tr.Get("root/src/main.go")
	assert.True(t, again.CompressionOverride.Minify)
}

func TestFilter(t *testing.T) {
	tr := sampleTree(t)

	out := tr.Filter(func(n Node) bool {
		return n.ID != "root/.git" && n.ID != "root/README.md"
	})

	assert.False(t, out.Has("root/.git"))
	assert.False(t, out.Has("root/.git/config"), "children of dropped nodes are dropped")
	assert.True(t, out.Has("root/src/lib/util.go"))
	assert.Equal(t, []NodeID{"root/src", "root/empty"}, out.Children("root"))
	assert.Equal(t, 9, tr.Len(), "source tree is untouched")
}

func TestNilTree(t *testing.T) {
	var tr *Tree
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Roots())
	assert.Empty(t, tr.Files())
	assert.Equal(t, 0, tr.Clone().Len())
}
