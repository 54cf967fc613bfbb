package session

import (
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/history"
	"github.com/arthur-debert/dirx/pkg/macro"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// edit applies fn to a copy of the live tree and commits it, recording the
// previous tree on the manual history. Nothing changes when fn fails.
func (s *Session) edit(fn func(t *tree.Tree) error) error {
	if err := s.requireTree(); err != nil {
		return err
	}
	next := s.tree.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.manual.Push(s.snapshot())
	s.tree = next
	return nil
}

// SetSelection selects or deselects a file.
func (s *Session) SetSelection(id tree.NodeID, selected bool) error {
	return s.edit(func(t *tree.Tree) error { return t.SetSelected(id, selected) })
}

func (s *Session) directoryFiles(t *tree.Tree, dir tree.NodeID) ([]tree.NodeID, error) {
	n, ok := t.Get(dir)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "node %q not found", dir)
	}
	if !n.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "node %q is not a directory", dir)
	}
	return t.DescendantFiles(dir), nil
}

// SelectAllIn selects or deselects every file below a directory.
func (s *Session) SelectAllIn(dir tree.NodeID, selected bool) error {
	return s.edit(func(t *tree.Tree) error {
		files, err := s.directoryFiles(t, dir)
		if err != nil {
			return err
		}
		for _, id := range files {
			if err := t.SetSelected(id, selected); err != nil {
				return err
			}
		}
		return nil
	})
}

// InvertIn flips the selection of every file below a directory.
func (s *Session) InvertIn(dir tree.NodeID) error {
	return s.edit(func(t *tree.Tree) error {
		files, err := s.directoryFiles(t, dir)
		if err != nil {
			return err
		}
		for _, id := range files {
			n, _ := t.Get(id)
			if err := t.SetSelected(id, !n.Selected); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDescription sets or clears (empty) a file's export description.
func (s *Session) SetDescription(id tree.NodeID, desc string) error {
	return s.edit(func(t *tree.Tree) error { return t.SetDescription(id, desc) })
}

// SetLineLimitOverride sets or clears (nil) a file's line-limit override.
func (s *Session) SetLineLimitOverride(id tree.NodeID, limit *types.LineLimit) error {
	return s.edit(func(t *tree.Tree) error { return t.SetLineLimitOverride(id, limit) })
}

// SetCompressionOverride sets or clears (nil) a file's compression override.
func (s *Session) SetCompressionOverride(id tree.NodeID, flags *types.CompressionFlags) error {
	return s.edit(func(t *tree.Tree) error { return t.SetCompressionOverride(id, flags) })
}

// ExecuteMacro runs a macro against the live selection.
func (s *Session) ExecuteMacro(id string) (macro.Report, error) {
	if err := s.requireTree(); err != nil {
		return macro.Report{}, err
	}
	m, ok := s.catalog.Macro(id)
	if !ok {
		return macro.Report{}, errors.Newf(errors.ErrMacroNotFound, "macro '%s' not found", id)
	}
	next, report := s.executor.Run(s.tree, m)
	s.macros.Push(s.snapshot())
	s.tree = next
	return report, nil
}

func (s *Session) snapshot() history.Snapshot {
	snap := history.Take(s.tree)
	snap.Decisions = s.decisions
	return snap
}

// restore makes snap live. The import decisions travel with the tree so an
// undone import also takes its report away.
func (s *Session) restore(snap history.Snapshot, exactSelection bool) {
	s.tree = snap.Restore(exactSelection)
	s.decisions = snap.Decisions
}

// UndoTree reverts the last manual edit.
func (s *Session) UndoTree() error {
	prev, ok := s.manual.Undo(s.snapshot())
	if !ok {
		return errors.New(errors.ErrNothingToUndo, "no edit to undo")
	}
	s.restore(prev, false)
	return nil
}

// RedoTree reapplies the last undone manual edit.
func (s *Session) RedoTree() error {
	next, ok := s.manual.Redo(s.snapshot())
	if !ok {
		return errors.New(errors.ErrNothingToRedo, "no edit to redo")
	}
	s.restore(next, false)
	return nil
}

// UndoMacro reverts the last macro run, restoring its exact selection.
func (s *Session) UndoMacro() error {
	prev, ok := s.macros.Undo(s.snapshot())
	if !ok {
		return errors.New(errors.ErrNothingToUndo, "no macro run to undo")
	}
	s.restore(prev, true)
	return nil
}

// RedoMacro reapplies the last undone macro run.
func (s *Session) RedoMacro() error {
	next, ok := s.macros.Redo(s.snapshot())
	if !ok {
		return errors.New(errors.ErrNothingToRedo, "no macro run to redo")
	}
	s.restore(next, true)
	return nil
}

// HistoryState reports how far each history can move.
type HistoryState struct {
	TreeUndo, TreeRedo   int
	MacroUndo, MacroRedo int
}

// History returns the depth of both histories.
func (s *Session) History() HistoryState {
	return HistoryState{
		TreeUndo:  s.manual.UndoDepth(),
		TreeRedo:  s.manual.RedoDepth(),
		MacroUndo: s.macros.UndoDepth(),
		MacroRedo: s.macros.RedoDepth(),
	}
}
