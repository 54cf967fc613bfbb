// Package session owns the live state of a dirx run: the catalog, the
// current tree and the two undo histories. Every user action goes through a
// Session method, which either completes or leaves the state untouched.
//
// Manual edits (imports, selection changes, property edits) are recorded on
// the tree history; macro runs on the macro history. Restoring a macro
// snapshot also restores its exact selection set.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirx/pkg/catalog"
	"github.com/arthur-debert/dirx/pkg/config"
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/export"
	"github.com/arthur-debert/dirx/pkg/history"
	"github.com/arthur-debert/dirx/pkg/hydrate"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/macro"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/source"
	"github.com/arthur-debert/dirx/pkg/store"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// Options configures a Session.
type Options struct {
	Config config.Config
	// Store persists the catalog. Nil keeps the catalog in memory only.
	Store store.Store
	// Catalog is used as is when set; otherwise it is loaded from Store, or
	// the built-in catalog is used.
	Catalog *catalog.Catalog
	// Clock stamps exports. Nil means time.Now.
	Clock func() time.Time
}

// Session is the single owner of mutable dirx state.
type Session struct {
	cfg   config.Config
	store store.Store
	clock func() time.Time

	catalog  *catalog.Catalog
	matcher  *matching.Matcher
	resolver *resolve.Resolver
	executor *macro.Executor
	exporter *export.Exporter

	tree      *tree.Tree
	decisions map[tree.NodeID]resolve.Decision

	manual *history.Stack
	macros *history.Stack

	logger zerolog.Logger
}

// New creates a Session. A catalog that fails to load from the store is
// replaced by the built-in one; the load error is logged, not returned.
func New(opts Options) *Session {
	s := &Session{
		cfg:     opts.Config,
		store:   opts.Store,
		clock:   opts.Clock,
		matcher: matching.New(matching.WithRegexTimeout(opts.Config.Matching.RegexTimeout())),
		manual:  history.NewStack(opts.Config.History.TreeDepth),
		macros:  history.NewStack(opts.Config.History.MacroDepth),
		logger:  logging.GetLogger("session"),
	}
	if s.clock == nil {
		s.clock = time.Now
	}

	cat := opts.Catalog
	if cat == nil && s.store != nil {
		var err error
		cat, err = s.store.Load()
		if err != nil {
			s.logger.Warn().Err(err).Msg("using built-in catalog")
		}
	}
	if cat == nil {
		cat = catalog.Default()
	}
	s.bind(cat)
	return s
}

// bind wires the evaluators to c.
func (s *Session) bind(c *catalog.Catalog) {
	s.catalog = c
	s.resolver = resolve.New(s.matcher, c)
	s.executor = macro.New(s.matcher, c)
	s.exporter = export.New(s.resolver, export.WithClock(s.clock))
}

// Catalog returns the live catalog. Call SaveCatalog after changing it.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Matcher returns the session's pattern matcher.
func (s *Session) Matcher() *matching.Matcher { return s.matcher }

// SaveCatalog persists the catalog. Without a store it does nothing.
func (s *Session) SaveCatalog() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.catalog)
}

// ResetToDefaults replaces the catalog with the built-in one and deletes the
// persisted state.
func (s *Session) ResetToDefaults() error {
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.bind(catalog.Default())
	s.logger.Info().Msg("catalog reset to defaults")
	return nil
}

// Tree returns a copy of the live tree, or nil before the first import.
func (s *Session) Tree() *tree.Tree {
	if s.tree == nil {
		return nil
	}
	return s.tree.Clone()
}

// Decisions returns the import decisions behind the live tree.
func (s *Session) Decisions() map[tree.NodeID]resolve.Decision {
	out := make(map[tree.NodeID]resolve.Decision, len(s.decisions))
	for id, d := range s.decisions {
		out[id] = d
	}
	return out
}

// rulesetByID resolves an optional ruleset id of the given kind. An empty id
// yields nil.
func (s *Session) rulesetByID(kind types.RuleKind, id string) (*types.Ruleset, error) {
	if id == "" {
		return nil, nil
	}
	rs, ok := s.catalog.Ruleset(id)
	if !ok {
		return nil, errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", id)
	}
	if rs.Kind != kind {
		return nil, errors.Newf(errors.ErrRulesetKind, "ruleset '%s' is a %s ruleset, not %s", id, rs.Kind, kind)
	}
	return &rs, nil
}

func (s *Session) selected(kind types.RuleKind) *types.Ruleset {
	rs, ok := s.catalog.SelectedRuleset(kind)
	if !ok {
		return nil
	}
	return &rs
}

// ResolveImport prunes raw with the import ruleset rulesetID ("" for none).
// It does not touch the session.
func (s *Session) ResolveImport(raw *tree.Tree, rulesetID string) (resolve.Result, error) {
	rs, err := s.rulesetByID(types.RuleImport, rulesetID)
	if err != nil {
		return resolve.Result{}, err
	}
	return s.resolver.Import(raw, rs), nil
}

// Hydrate loads the text of every file in t from src.
func (s *Session) Hydrate(ctx context.Context, src source.Source, t *tree.Tree) (*tree.Tree, hydrate.Stats, error) {
	h := hydrate.New(src, s.cfg.Hydration.Workers, s.cfg.Hydration.NoLinesSet())
	return h.Hydrate(ctx, t)
}

// ImportReport describes a completed import.
type ImportReport struct {
	Raw      int
	Kept     int
	Hydrated hydrate.Stats
}

// Import lists src, prunes it with the selected import ruleset, loads the
// surviving files and makes the result the live tree.
func (s *Session) Import(ctx context.Context, src source.Source) (ImportReport, error) {
	defer logging.LogOperationStart(s.logger, "import")()

	raw, err := src.Tree(ctx)
	if err != nil {
		return ImportReport{}, err
	}
	res := s.resolver.Import(raw, s.selected(types.RuleImport))
	loaded, stats, err := s.Hydrate(ctx, src, res.Tree)
	if err != nil {
		return ImportReport{}, err
	}

	s.manual.Push(s.snapshot())
	s.tree = loaded
	s.decisions = res.Decisions

	report := ImportReport{Raw: raw.Len(), Kept: loaded.Len(), Hydrated: stats}
	s.logger.Info().
		Int("raw", report.Raw).
		Int("kept", report.Kept).
		Int("loaded", stats.Loaded).
		Msg("import complete")
	return report, nil
}

// ExportOptions returns the merged-export options for the selected rulesets.
func (s *Session) ExportOptions() export.Options {
	return export.Options{
		Header:      s.cfg.Export.HeaderComment,
		IncludeTree: s.cfg.Export.IncludeTree,
		Import:      s.selected(types.RuleImport),
		Compression: s.selected(types.RuleCompression),
		LineLimit:   s.selected(types.RuleLineLimit),
	}
}

func (s *Session) requireTree() error {
	if s.tree == nil {
		return errors.New(errors.ErrNoTree, "nothing imported yet")
	}
	return nil
}

// ExportMerged renders the selected files with the selected rulesets.
func (s *Session) ExportMerged() (export.Document, error) {
	if err := s.requireTree(); err != nil {
		return export.Document{}, err
	}
	return s.exporter.Merged(s.tree, s.ExportOptions())
}

// ExportMergedWith renders the selected files with explicit compression and
// line-limit rulesets; an empty id applies none.
func (s *Session) ExportMergedWith(compressionID, lineLimitID string) (export.Document, error) {
	if err := s.requireTree(); err != nil {
		return export.Document{}, err
	}
	opts := s.ExportOptions()
	var err error
	if opts.Compression, err = s.rulesetByID(types.RuleCompression, compressionID); err != nil {
		return export.Document{}, err
	}
	if opts.LineLimit, err = s.rulesetByID(types.RuleLineLimit, lineLimitID); err != nil {
		return export.Document{}, err
	}
	return s.exporter.Merged(s.tree, opts)
}

// ExportSeparate renders each selected file as its own document.
func (s *Session) ExportSeparate() ([]export.Document, error) {
	if err := s.requireTree(); err != nil {
		return nil, err
	}
	return s.exporter.Separate(s.tree, s.ExportOptions())
}

// ExportTree renders the live tree.
func (s *Session) ExportTree() (export.Document, error) {
	if err := s.requireTree(); err != nil {
		return export.Document{}, err
	}
	return s.exporter.Tree(s.tree), nil
}
