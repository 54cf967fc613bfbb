package catalog

import (
	"github.com/arthur-debert/dirx/pkg/types"
)

// StateVersion is written into every persisted State.
const StateVersion = 1

// State is the persisted form of a catalog. A nil section means "not
// stored" and is taken from the built-in catalog on restore; an empty one is
// kept empty.
type State struct {
	Version    int               `json:"version"`
	Matches    []types.Match     `json:"matches"`
	Rules      []types.Rule      `json:"rules"`
	Rulesets   []types.Ruleset   `json:"rulesets"`
	Operations []types.Operation `json:"operations"`
	Macros     []types.Macro     `json:"macros"`
	Selected   *Selection        `json:"selected,omitempty"`
}

// State snapshots the catalog.
func (c *Catalog) State() State {
	sel := c.selection
	return State{
		Version:    StateVersion,
		Matches:    c.matches.List(),
		Rules:      c.rules.List(),
		Rulesets:   c.rulesets.List(),
		Operations: c.operations.List(),
		Macros:     c.macros.List(),
		Selected:   &sel,
	}
}

// FromState restores a catalog. References between sections are not
// checked, since evaluation skips anything dangling. Selections that no
// longer resolve to a ruleset of the right kind fall back to the defaults.
func FromState(s State, opts ...Option) (*Catalog, error) {
	defaults := Default(opts...)
	if s.Matches == nil {
		s.Matches = defaults.Matches()
	}
	if s.Rules == nil {
		s.Rules = defaults.Rules()
	}
	if s.Rulesets == nil {
		s.Rulesets = defaults.Rulesets()
	}
	if s.Operations == nil {
		s.Operations = defaults.Operations()
	}
	if s.Macros == nil {
		s.Macros = defaults.Macros()
	}

	c := New(opts...)
	for _, m := range s.Matches {
		if err := c.matches.Add(m); err != nil {
			return nil, err
		}
	}
	for _, r := range s.Rules {
		if err := c.rules.Add(r); err != nil {
			return nil, err
		}
	}
	for _, rs := range s.Rulesets {
		sortByPosition(rs.Instances, priorityOf)
		if err := c.rulesets.Add(rs); err != nil {
			return nil, err
		}
	}
	for _, o := range s.Operations {
		if err := c.operations.Add(o); err != nil {
			return nil, err
		}
	}
	for _, m := range s.Macros {
		sortByPosition(m.Instances, sequenceOf)
		if err := c.macros.Add(m); err != nil {
			return nil, err
		}
	}

	sel := defaults.Selection()
	if s.Selected != nil {
		sel = *s.Selected
	}
	for _, kind := range []types.RuleKind{types.RuleImport, types.RuleCompression, types.RuleLineLimit} {
		if err := c.SelectRuleset(kind, sel.Get(kind)); err != nil {
			c.logger.Warn().Err(err).Str("kind", string(kind)).Msg("stored selection is invalid")
			c.resetSelection(kind)
		}
	}
	return c, nil
}
