package catalog

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/registry"
	"github.com/arthur-debert/dirx/pkg/types"
)

// Ids of the built-in rulesets that a deleted selection falls back to.
const (
	DefaultImportRulesetID      = "rs-default-import"
	DefaultCompressionRulesetID = "rs-default-compression"
	DefaultLineLimitRulesetID   = "rs-default-line-limit"
)

// Selection names the active ruleset per kind. An empty id means none.
type Selection struct {
	Import      string `json:"import" yaml:"import"`
	Compression string `json:"compression" yaml:"compression"`
	LineLimit   string `json:"lineLimit" yaml:"line_limit"`
}

// Get returns the selected id for kind.
func (s Selection) Get(kind types.RuleKind) string {
	switch kind {
	case types.RuleImport:
		return s.Import
	case types.RuleCompression:
		return s.Compression
	case types.RuleLineLimit:
		return s.LineLimit
	}
	return ""
}

func (s *Selection) set(kind types.RuleKind, id string) {
	switch kind {
	case types.RuleImport:
		s.Import = id
	case types.RuleCompression:
		s.Compression = id
	case types.RuleLineLimit:
		s.LineLimit = id
	}
}

// Catalog is the set of definitions owned by a session. It is safe for
// concurrent reads; mutations are expected from a single owner.
type Catalog struct {
	matches    *registry.Registry[types.Match]
	rules      *registry.Registry[types.Rule]
	rulesets   *registry.Registry[types.Ruleset]
	operations *registry.Registry[types.Operation]
	macros     *registry.Registry[types.Macro]

	selection Selection
	newID     func() string
	logger    zerolog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithIDGenerator replaces the uuid generator used for new entities.
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) { c.newID = fn }
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		matches:    registry.New("match", func(m types.Match) string { return m.ID }, types.Match.Clone),
		rules:      registry.New("rule", func(r types.Rule) string { return r.ID }, types.Rule.Clone),
		rulesets:   registry.New("ruleset", func(rs types.Ruleset) string { return rs.ID }, types.Ruleset.Clone),
		operations: registry.New("operation", func(o types.Operation) string { return o.ID }, types.Operation.Clone),
		macros:     registry.New("macro", func(m types.Macro) string { return m.ID }, types.Macro.Clone),
		newID:      uuid.NewString,
		logger:     logging.GetLogger("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Match looks up a match by id. Its signature fits matching.Lookup.
func (c *Catalog) Match(id string) (types.Match, bool) { return c.matches.Get(id) }

// Rule looks up a rule by id.
func (c *Catalog) Rule(id string) (types.Rule, bool) { return c.rules.Get(id) }

// Ruleset looks up a ruleset by id.
func (c *Catalog) Ruleset(id string) (types.Ruleset, bool) { return c.rulesets.Get(id) }

// Operation looks up an operation by id.
func (c *Catalog) Operation(id string) (types.Operation, bool) { return c.operations.Get(id) }

// Macro looks up a macro by id.
func (c *Catalog) Macro(id string) (types.Macro, bool) { return c.macros.Get(id) }

func (c *Catalog) Matches() []types.Match        { return c.matches.List() }
func (c *Catalog) Rules() []types.Rule           { return c.rules.List() }
func (c *Catalog) Rulesets() []types.Ruleset     { return c.rulesets.List() }
func (c *Catalog) Operations() []types.Operation { return c.operations.List() }
func (c *Catalog) Macros() []types.Macro         { return c.macros.List() }

// RulesOfKind lists the rules whose action has the given kind.
func (c *Catalog) RulesOfKind(kind types.RuleKind) []types.Rule {
	var out []types.Rule
	for _, r := range c.rules.List() {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// RulesetsOfKind lists the rulesets of the given kind.
func (c *Catalog) RulesetsOfKind(kind types.RuleKind) []types.Ruleset {
	var out []types.Ruleset
	for _, rs := range c.rulesets.List() {
		if rs.Kind == kind {
			out = append(out, rs)
		}
	}
	return out
}

// Selection returns the active ruleset pointers.
func (c *Catalog) Selection() Selection { return c.selection }

// SelectRuleset makes id the active ruleset for kind. An empty id clears the
// selection.
func (c *Catalog) SelectRuleset(kind types.RuleKind, id string) error {
	if !validKind(kind) {
		return errors.Newf(errors.ErrInvalidInput, "unknown rule kind %q", kind)
	}
	if id != "" {
		rs, ok := c.rulesets.Get(id)
		if !ok {
			return errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", id)
		}
		if rs.Kind != kind {
			return errors.Newf(errors.ErrRulesetKind, "ruleset '%s' is a %s ruleset, not %s", id, rs.Kind, kind).
				WithDetail("ruleset", id)
		}
	}
	c.selection.set(kind, id)
	c.logger.Debug().Str("kind", string(kind)).Str("ruleset", id).Msg("ruleset selected")
	return nil
}

// SelectedRuleset returns the active ruleset for kind, if any.
func (c *Catalog) SelectedRuleset(kind types.RuleKind) (types.Ruleset, bool) {
	id := c.selection.Get(kind)
	if id == "" {
		return types.Ruleset{}, false
	}
	return c.rulesets.Get(id)
}

func validKind(kind types.RuleKind) bool {
	return kind == types.RuleImport || kind == types.RuleCompression || kind == types.RuleLineLimit
}

func defaultRulesetID(kind types.RuleKind) string {
	switch kind {
	case types.RuleImport:
		return DefaultImportRulesetID
	case types.RuleCompression:
		return DefaultCompressionRulesetID
	case types.RuleLineLimit:
		return DefaultLineLimitRulesetID
	}
	return ""
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
