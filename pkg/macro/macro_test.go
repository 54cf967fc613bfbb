package macro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/catalog"
	"github.com/arthur-debert/dirx/pkg/macro"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

func addMatch(t *testing.T, c *catalog.Catalog, id string, target types.TargetKind, mode types.ComparisonMode, value string) {
	t.Helper()
	_, err := c.AddMatch(types.Match{ID: id, Target: target, Mode: mode, Conditions: []types.Condition{{Value: value}}})
	require.NoError(t, err)
}

func addOp(t *testing.T, c *catalog.Catalog, id string, target types.OperationTarget, action types.OperationAction, matches ...string) {
	t.Helper()
	_, err := c.AddOperation(types.Operation{ID: id, Target: target, Action: action, MatchRefs: matches})
	require.NoError(t, err)
}

func macroOf(ops ...string) types.Macro {
	m := types.Macro{ID: "m"}
	for i, op := range ops {
		m.Instances = append(m.Instances, types.OperationInstance{
			ID: op, OperationRef: op, Sequence: (i + 1) * 10, Enabled: true,
		})
	}
	return m
}

func selected(t *tree.Tree) []tree.NodeID {
	var out []tree.NodeID
	for _, n := range t.SelectedFiles() {
		out = append(out, n.ID)
	}
	return out
}

func TestSelectFolderThenUncheckLocks(t *testing.T) {
	c := catalog.New()
	addMatch(t, c, "src", types.TargetFolder, types.NameWildcard, "src")
	addMatch(t, c, "lock", types.TargetFile, types.SuffixExact, ".lock")
	addOp(t, c, "select-src", types.TargetMatchedFolderContents, types.SelectAll, "src")
	addOp(t, c, "uncheck-locks", types.TargetMatchedFile, types.Uncheck, "lock")

	raw := tree.MustFromPaths(
		"p/src/main.go",
		"p/src/yarn.lock",
		"p/src/pkg/deep/deps.lock",
		"p/src/pkg/deep/util.go",
		"p/docs/readme.md",
	)
	out, report := macro.New(matching.New(), c).Run(raw, macroOf("select-src", "uncheck-locks"))

	assert.Equal(t, []tree.NodeID{"p/src/main.go", "p/src/pkg/deep/util.go"}, selected(out))
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 2, report.Changed)
	assert.Empty(t, selected(raw))
}

func TestSequenceOrderMatters(t *testing.T) {
	c := catalog.New()
	addMatch(t, c, "go", types.TargetFile, types.SuffixExact, ".go")
	addOp(t, c, "check", types.TargetMatchedFile, types.Check, "go")
	addOp(t, c, "uncheck", types.TargetMatchedFile, types.Uncheck, "go")
	raw := tree.MustFromPaths("p/a.go")
	exec := macro.New(matching.New(), c)

	m := macroOf("check", "uncheck")
	out, _ := exec.Run(raw, m)
	assert.Empty(t, selected(out))

	// list order is irrelevant, sequence decides
	m.Instances[0].Sequence = 30
	out, _ = exec.Run(raw, m)
	assert.Equal(t, []tree.NodeID{"p/a.go"}, selected(out))
}

func TestInvertNestedFoldersFlipsTwice(t *testing.T) {
	c := catalog.New()
	addMatch(t, c, "src", types.TargetFolder, types.NameWildcard, "src")
	addOp(t, c, "invert", types.TargetMatchedFolderContents, types.Invert, "src")

	raw := tree.MustFromPaths("p/src/a.go", "p/src/src/b.go", "p/c.go")
	require.NoError(t, raw.SetSelected("p/src/a.go", true))
	require.NoError(t, raw.SetSelected("p/c.go", true))

	out, _ := macro.New(matching.New(), c).Run(raw, macroOf("invert"))
	assert.Equal(t, []tree.NodeID{"p/c.go"}, selected(out))
}

func TestInvertSubstringFolders(t *testing.T) {
	c := catalog.New()
	addMatch(t, c, "src", types.TargetFolder, types.NameSubstring, "src")
	addOp(t, c, "invert", types.TargetMatchedFolderContents, types.Invert, "src")

	raw := tree.MustFromPaths("p/src/a.go", "p/src/subsrc/b.go")

	out, _ := macro.New(matching.New(), c).Run(raw, macroOf("invert"))
	assert.Equal(t, []tree.NodeID{"p/src/a.go"}, selected(out))
}

func TestMissingReferencesAreSkipped(t *testing.T) {
	c := catalog.New()
	addOp(t, c, "dangling", types.TargetMatchedFile, types.Check, "deleted-match")
	raw := tree.MustFromPaths("p/a.go")

	out, report := macro.New(matching.New(), c).Run(raw, macroOf("dangling", "no-such-op"))
	assert.Empty(t, selected(out))
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Skipped)
}

func TestDisabledInstancesDoNotRun(t *testing.T) {
	c := catalog.New()
	addMatch(t, c, "go", types.TargetFile, types.SuffixExact, ".go")
	addOp(t, c, "check", types.TargetMatchedFile, types.Check, "go")
	m := macroOf("check")
	m.Instances[0].Enabled = false

	out, report := macro.New(matching.New(), c).Run(tree.MustFromPaths("p/a.go"), m)
	assert.Empty(t, selected(out))
	assert.Equal(t, 0, report.Applied)
}

func TestDefaultCommonCodeMacro(t *testing.T) {
	c := catalog.Default()
	m, ok := c.Macro("macro-common-code")
	require.True(t, ok)

	raw := tree.MustFromPaths("p/main.go", "p/package.json", "p/Cargo.lock", "p/src/app.tsx", "p/Makefile", "p/notes.md")
	out, _ := macro.New(matching.New(), c).Run(raw, m)
	assert.Equal(t, []tree.NodeID{"p/main.go", "p/src/app.tsx", "p/Makefile"}, selected(out))
}
