// Package hydrate loads file text into a pruned tree.
//
// Only files still present after import resolution are visited, so excluded
// files are never read. Files whose name ends in a no-lines extension are
// not read either: they get a placeholder and a NoLines override instead.
// Reads run concurrently on a bounded errgroup; the tree itself is only
// updated once every read has finished.
package hydrate

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/source"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

const (
	// NoLinesPlaceholder is the text of files that are never loaded.
	NoLinesPlaceholder = "[binary or non-text content not loaded]"
	// ReadErrorPlaceholder is the text of files that could not be read.
	ReadErrorPlaceholder = "[could not read file content]"
)

// Stats summarises a hydration pass.
type Stats struct {
	Loaded  int
	NoLines int
	Failed  int
}

// Hydrator loads file text from a Source.
type Hydrator struct {
	src     source.Source
	workers int
	noLines []string
	logger  zerolog.Logger
}

// New creates a Hydrator. workers bounds concurrent reads; values below 1
// mean 1. noLines holds lowercase name suffixes such as ".png".
func New(src source.Source, workers int, noLines map[string]bool) *Hydrator {
	if workers < 1 {
		workers = 1
	}
	h := &Hydrator{
		src:     src,
		workers: workers,
		logger:  logging.GetLogger("hydrate"),
	}
	for ext := range noLines {
		h.noLines = append(h.noLines, strings.ToLower(ext))
	}
	return h
}

// IsNoLines reports whether a file name ends in a no-lines extension.
func (h *Hydrator) IsNoLines(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range h.noLines {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

type pending struct {
	id  tree.NodeID
	ref string
}

type loaded struct {
	text string
	err  error
}

// Hydrate returns a copy of t with every unhydrated file loaded. Read
// failures become ReadErrorPlaceholder with zero lines and do not stop the
// pass. The only error returned is the context's.
func (h *Hydrator) Hydrate(ctx context.Context, t *tree.Tree) (*tree.Tree, Stats, error) {
	out := t.Clone()
	var stats Stats
	var work []pending

	for _, n := range out.Files() {
		u, ok := n.Content.(tree.Unhydrated)
		if !ok {
			continue
		}
		if h.IsNoLines(n.Name) {
			_ = out.SetContent(n.ID, tree.Hydrated{Text: NoLinesPlaceholder})
			_ = out.SetLineLimitOverride(n.ID, &types.LineLimit{Mode: types.NoLines})
			stats.NoLines++
			continue
		}
		work = append(work, pending{id: n.ID, ref: u.Ref})
	}

	results := make([]loaded, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, p := range work {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := h.src.ReadText(gctx, p.ref)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i] = loaded{text: text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	for i, p := range work {
		r := results[i]
		if r.err != nil {
			h.logger.Warn().Err(r.err).Str("file", string(p.id)).Msg("could not read file")
			_ = out.SetContent(p.id, tree.Hydrated{Text: ReadErrorPlaceholder})
			stats.Failed++
			continue
		}
		_ = out.SetContent(p.id, tree.Hydrated{Text: r.text, Lines: CountLines(r.text)})
		stats.Loaded++
	}

	h.logger.Debug().
		Int("loaded", stats.Loaded).
		Int("no_lines", stats.NoLines).
		Int("failed", stats.Failed).
		Msg("tree hydrated")
	return out, stats, nil
}

// CountLines counts "\n"-separated lines; empty text is one line.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}
