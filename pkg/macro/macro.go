// Package macro runs macros against a tree's selection.
//
// A run starts from the tree's current selection, applies every enabled
// operation in sequence order to a working set and writes the set back onto
// a copy of the tree in one pass. Operations walk the whole tree. Missing
// operations and dangling match references are skipped, never errors.
package macro

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// Definitions resolves the ids a macro refers to. *catalog.Catalog
// satisfies it.
type Definitions interface {
	Match(id string) (types.Match, bool)
	Operation(id string) (types.Operation, bool)
}

// Report summarises a run.
type Report struct {
	Applied  int
	Skipped  int
	Selected int
	Changed  int
}

// Executor runs macros.
type Executor struct {
	matcher *matching.Matcher
	defs    Definitions
	logger  zerolog.Logger
}

// New creates an Executor.
func New(matcher *matching.Matcher, defs Definitions) *Executor {
	return &Executor{
		matcher: matcher,
		defs:    defs,
		logger:  logging.GetLogger("macro"),
	}
}

// Run applies m to t and returns the resulting tree. t is not modified.
func (e *Executor) Run(t *tree.Tree, m types.Macro) (*tree.Tree, Report) {
	before := t.SelectedIDs()
	working := make(map[tree.NodeID]bool, len(before))
	for id := range before {
		working[id] = true
	}

	var report Report
	for _, inst := range m.Ordered() {
		op, ok := e.defs.Operation(inst.OperationRef)
		if !ok || !op.Action.ValidFor(op.Target) {
			e.logger.Debug().Str("macro", m.ID).Str("operation", inst.OperationRef).Msg("skipping operation")
			report.Skipped++
			continue
		}
		e.Apply(t, op, working)
		report.Applied++
	}

	out := t.Clone()
	out.ApplySelection(working)

	report.Selected = len(working)
	for id := range working {
		if !before[id] {
			report.Changed++
		}
	}
	for id := range before {
		if !working[id] {
			report.Changed++
		}
	}
	e.logger.Info().
		Str("macro", m.ID).
		Int("applied", report.Applied).
		Int("skipped", report.Skipped).
		Int("changed", report.Changed).
		Msg("macro executed")
	return out, report
}

// Apply runs a single operation against the selection set.
func (e *Executor) Apply(t *tree.Tree, op types.Operation, selected map[tree.NodeID]bool) {
	switch op.Target {
	case types.TargetMatchedFile:
		t.Walk(func(n tree.Node, _ int) bool {
			if n.IsFile() && e.matcher.MatchesAny(n, op.MatchRefs, e.defs.Match) {
				if op.Action == types.Check {
					selected[n.ID] = true
				} else {
					delete(selected, n.ID)
				}
			}
			return true
		})

	case types.TargetMatchedFolderContents:
		// every matching folder acts on all its files, so nested matches act twice
		t.Walk(func(n tree.Node, _ int) bool {
			if n.IsDir() && e.matcher.MatchesAny(n, op.MatchRefs, e.defs.Match) {
				for _, id := range t.DescendantFiles(n.ID) {
					applyFolderAction(op.Action, id, selected)
				}
			}
			return true
		})
	}
}

func applyFolderAction(action types.OperationAction, id tree.NodeID, selected map[tree.NodeID]bool) {
	switch action {
	case types.SelectAll:
		selected[id] = true
	case types.DeselectAll:
		delete(selected, id)
	case types.Invert:
		if selected[id] {
			delete(selected, id)
		} else {
			selected[id] = true
		}
	}
}
