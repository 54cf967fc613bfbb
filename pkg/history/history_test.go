package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/history"
	"github.com/arthur-debert/dirx/pkg/tree"
)

func treeWith(t *testing.T, selected ...tree.NodeID) *tree.Tree {
	t.Helper()
	tr := tree.MustFromPaths("p/a", "p/b", "p/c")
	for _, id := range selected {
		require.NoError(t, tr.SetSelected(id, true))
	}
	return tr
}

func TestUndoRedoIsLinear(t *testing.T) {
	s := history.NewStack(5)
	s0 := treeWith(t)
	s1 := treeWith(t, "p/a")

	s.Push(history.Take(s0))
	prev, ok := s.Undo(history.Take(s1))
	require.True(t, ok)
	assert.Equal(t, s0.SelectedIDs(), prev.Restore(false).SelectedIDs())

	next, ok := s.Redo(history.Take(prev.Restore(false)))
	require.True(t, ok)
	assert.Equal(t, s1, next.Restore(true))

	_, ok = s.Redo(history.Take(s1))
	assert.False(t, ok)
}

func TestPushClearsRedo(t *testing.T) {
	s := history.NewStack(5)
	s.Push(history.Take(treeWith(t)))
	_, ok := s.Undo(history.Take(treeWith(t, "p/a")))
	require.True(t, ok)
	assert.True(t, s.CanRedo())

	s.Push(history.Take(treeWith(t, "p/b")))
	assert.False(t, s.CanRedo())
}

func TestStackIsBounded(t *testing.T) {
	s := history.NewStack(3)
	for _, id := range []tree.NodeID{"p/a", "p/b", "p/c", "p/a"} {
		s.Push(history.Take(treeWith(t, id)))
	}
	assert.Equal(t, 3, s.UndoDepth())

	var got []map[tree.NodeID]bool
	for s.CanUndo() {
		snap, _ := s.Undo(history.Take(treeWith(t)))
		got = append(got, snap.Selection)
	}
	// the oldest push (p/a) was dropped
	assert.Equal(t, []map[tree.NodeID]bool{{"p/a": true}, {"p/c": true}, {"p/b": true}}, got)
	assert.Equal(t, 3, s.RedoDepth())
}

func TestSnapshotIsDetached(t *testing.T) {
	live := treeWith(t, "p/a")
	snap := history.Take(live)

	require.NoError(t, live.SetSelected("p/b", true))
	assert.Equal(t, map[tree.NodeID]bool{"p/a": true}, snap.Selection)

	restored := snap.Restore(true)
	require.NoError(t, restored.SetSelected("p/c", true))
	again := snap.Restore(true)
	assert.Equal(t, map[tree.NodeID]bool{"p/a": true}, again.SelectedIDs())
}

func TestEmptyStacks(t *testing.T) {
	s := history.NewStack(0)
	assert.Equal(t, 1, s.Limit())
	_, ok := s.Undo(history.Snapshot{})
	assert.False(t, ok)
	_, ok = s.Redo(history.Snapshot{})
	assert.False(t, ok)
}
