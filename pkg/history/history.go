// Package history keeps bounded, linear undo/redo stacks of tree snapshots.
package history

import (
	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/tree"
)

// Snapshot is a detached copy of a tree and its selected file ids.
// Decisions holds the import report that produced the tree; it is shared,
// never mutated, and left nil by Take.
type Snapshot struct {
	Tree      *tree.Tree
	Selection map[tree.NodeID]bool
	Decisions map[tree.NodeID]resolve.Decision
}

// Take copies t. The snapshot shares nothing with t.
func Take(t *tree.Tree) Snapshot {
	if t == nil {
		return Snapshot{}
	}
	return Snapshot{Tree: t.Clone(), Selection: t.SelectedIDs()}
}

// Restore returns a fresh tree from the snapshot. With exactSelection the
// recorded selection set is written back onto the files.
func (s Snapshot) Restore(exactSelection bool) *tree.Tree {
	if s.Tree == nil {
		return nil
	}
	t := s.Tree.Clone()
	if exactSelection {
		t.ApplySelection(s.Selection)
	}
	return t
}

// Stack is a pair of undo and redo stacks holding at most Limit snapshots
// each. Pushing a new state clears the redo side.
type Stack struct {
	limit int
	undo  []Snapshot
	redo  []Snapshot
}

// NewStack creates a Stack. A limit below 1 means 1.
func NewStack(limit int) *Stack {
	if limit < 1 {
		limit = 1
	}
	return &Stack{limit: limit}
}

// Limit returns the capacity of each side.
func (s *Stack) Limit() int { return s.limit }

// Push records the state before a mutation.
func (s *Stack) Push(snap Snapshot) {
	s.undo = s.bounded(append(s.undo, snap))
	s.redo = nil
}

// Undo pops the most recent state and records current for Redo.
func (s *Stack) Undo(current Snapshot) (Snapshot, bool) {
	if len(s.undo) == 0 {
		return Snapshot{}, false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = s.bounded(append(s.redo, current))
	return prev, true
}

// Redo pops the most recently undone state and records current for Undo.
func (s *Stack) Redo(current Snapshot) (Snapshot, bool) {
	if len(s.redo) == 0 {
		return Snapshot{}, false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = s.bounded(append(s.undo, current))
	return next, true
}

func (s *Stack) CanUndo() bool  { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool  { return len(s.redo) > 0 }
func (s *Stack) UndoDepth() int { return len(s.undo) }
func (s *Stack) RedoDepth() int { return len(s.redo) }

// Clear drops both sides.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

// bounded drops the oldest entries beyond the limit.
func (s *Stack) bounded(list []Snapshot) []Snapshot {
	if over := len(list) - s.limit; over > 0 {
		list = append([]Snapshot(nil), list[over:]...)
	}
	return list
}
