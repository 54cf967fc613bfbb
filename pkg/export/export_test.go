package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/catalog"
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/export"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func hydrated(t *testing.T, texts map[tree.NodeID]string, paths ...string) *tree.Tree {
	t.Helper()
	tr := tree.MustFromPaths(paths...)
	for id, text := range texts {
		require.NoError(t, tr.SetContent(id, tree.Hydrated{Text: text, Lines: strings.Count(text, "\n") + 1}))
	}
	return tr
}

func newExporter(t *testing.T, cat *catalog.Catalog) *export.Exporter {
	t.Helper()
	return export.New(resolve.New(matching.New(), cat), export.WithClock(func() time.Time { return fixedNow }))
}

func TestMergedRequiresSelection(t *testing.T) {
	e := newExporter(t, catalog.New())
	_, err := e.Merged(tree.MustFromPaths("p/a.txt"), export.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSelection))

	_, err = e.Separate(tree.MustFromPaths("p/a.txt"), export.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSelection))
}

func TestMergedLayout(t *testing.T) {
	cat := catalog.New()
	_, err := cat.AddMatch(types.Match{ID: "txt", Target: types.TargetFile, Mode: types.SuffixExact,
		Conditions: []types.Condition{{Value: ".txt"}}})
	require.NoError(t, err)
	_, err = cat.AddRule(types.Rule{ID: "head", Name: "First two", MatchRefs: []string{"txt"},
		Action: types.LineLimit{Mode: types.HeadN, Params: types.LimitParams{N: 2}}})
	require.NoError(t, err)
	_, err = cat.AddRule(types.Rule{ID: "blank", Name: "No blanks", MatchRefs: []string{"txt"},
		Action: types.CompressionFlags{RemoveEmptyLines: true}})
	require.NoError(t, err)
	limits := &types.Ruleset{ID: "ll", Name: "Limits", Kind: types.RuleLineLimit,
		Instances: []types.RuleInstance{{ID: "i", RuleRef: "head", Priority: 1, Enabled: true}}}
	compression := &types.Ruleset{ID: "cr", Name: "Compact", Kind: types.RuleCompression,
		Instances: []types.RuleInstance{{ID: "i", RuleRef: "blank", Priority: 1, Enabled: true}}}

	tr := hydrated(t, map[tree.NodeID]string{
		"p/a.txt": "a\n\nb\nc\nd",
		"p/b.go":  "package b",
	}, "p/a.txt", "p/b.go", "p/skip.go")
	require.NoError(t, tr.SetSelected("p/a.txt", true))
	require.NoError(t, tr.SetSelected("p/b.go", true))
	require.NoError(t, tr.SetDescription("p/b.go", "the b package"))

	doc, err := newExporter(t, cat).Merged(tr, export.Options{Compression: compression, LineLimit: limits})
	require.NoError(t, err)

	want := `// dirx merged export
// Time: 2026-03-14T15:09:26Z
// Files: 2
// Import ruleset: none
// Compression ruleset: Compact
// Line limit ruleset: Limits

// File list:
// - p/a.txt
// - p/b.go

// --- file contents ---

// Path: p/a.txt
// Line limit: First two (first 2 lines)
a
b
// --- end of p/a.txt ---

// Path: p/b.go
// Description: the b package
package b
// --- end of p/b.go ---

`
	assert.Equal(t, want, doc.Text)
	assert.Equal(t, "dirx-merged-20260314-150926.txt", doc.Name)
}

func TestMergedOverridesAndPlaceholders(t *testing.T) {
	tr := tree.MustFromPaths("p/empty.txt")
	require.NoError(t, tr.SetSelected("p/empty.txt", true))
	require.NoError(t, tr.SetLineLimitOverride("p/empty.txt", &types.LineLimit{Mode: types.NoLines}))

	doc, err := newExporter(t, catalog.New()).Merged(tr, export.Options{Header: "# custom", IncludeTree: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Text, "# custom\n"))
	assert.Contains(t, doc.Text, "// Line limit: file override (no lines)\n")
	assert.Contains(t, doc.Text, "[content omitted by line limit]\n// --- end of p/empty.txt ---")
	assert.Contains(t, doc.Text, "// --- directory tree ---\n└── p/\n    └── empty.txt (selected)\n")
}

func TestFileTextUsesPlaceholderForEmptyFiles(t *testing.T) {
	tr := tree.MustFromPaths("p/a.txt")
	n, _ := tr.Get("p/a.txt")
	text, info := newExporter(t, catalog.New()).FileText(n, export.Options{})
	assert.Equal(t, export.EmptyContentPlaceholder, text)
	assert.Empty(t, info)
}

func TestRenderTree(t *testing.T) {
	tr := tree.MustFromPaths("proj/src/main.go", "proj/src/util.go", "proj/docs/", "proj/README.md")
	require.NoError(t, tr.SetSelected("proj/src/util.go", true))

	want := `└── proj/
    ├── src/
    │   ├── main.go
    │   └── util.go (selected)
    ├── docs/
    └── README.md
`
	assert.Equal(t, want, export.RenderTree(tr))

	doc := newExporter(t, catalog.New()).Tree(tr)
	assert.Equal(t, "dirx-tree-20260314-150926.txt", doc.Name)
	assert.Equal(t, want, doc.Text)
}

func TestSeparate(t *testing.T) {
	tr := hydrated(t, map[tree.NodeID]string{"p/a.txt": "a\n\nb"}, "p/a.txt", "p/b.txt")
	require.NoError(t, tr.SetSelected("p/a.txt", true))
	require.NoError(t, tr.SetCompressionOverride("p/a.txt", &types.CompressionFlags{RemoveEmptyLines: true}))

	docs, err := newExporter(t, catalog.New()).Separate(tr, export.Options{})
	require.NoError(t, err)
	assert.Equal(t, []export.Document{{Name: "p/a.txt", Text: "a\nb"}}, docs)
}
