package catalog

import (
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

// AddMatch stores a new match. Empty match and condition ids are generated.
func (c *Catalog) AddMatch(m types.Match) (types.Match, error) {
	if m.ID == "" {
		m.ID = c.newID()
	}
	m = c.withConditionIDs(m)
	if err := validateMatch(m); err != nil {
		return types.Match{}, err
	}
	if err := c.matches.Add(m); err != nil {
		return types.Match{}, err
	}
	return m.Clone(), nil
}

// UpdateMatch replaces an existing match.
func (c *Catalog) UpdateMatch(m types.Match) error {
	m = c.withConditionIDs(m)
	if err := validateMatch(m); err != nil {
		return err
	}
	return c.matches.Put(m)
}

// DeleteMatch removes a match and every reference to it.
func (c *Catalog) DeleteMatch(id string) error {
	if err := c.matches.Remove(id); err != nil {
		return err
	}
	c.rules.UpdateAll(func(r *types.Rule) { r.MatchRefs = removeString(r.MatchRefs, id) })
	c.operations.UpdateAll(func(o *types.Operation) { o.MatchRefs = removeString(o.MatchRefs, id) })
	c.logger.Debug().Str("match", id).Msg("match deleted")
	return nil
}

func (c *Catalog) withConditionIDs(m types.Match) types.Match {
	m = m.Clone()
	for i := range m.Conditions {
		if m.Conditions[i].ID == "" {
			m.Conditions[i].ID = c.newID()
		}
	}
	return m
}

func validateMatch(m types.Match) error {
	if m.Target != types.TargetFolder && m.Target != types.TargetFile {
		return errors.Newf(errors.ErrInvalidInput, "match '%s': unknown target %q", m.ID, m.Target)
	}
	if !m.Mode.ValidFor(m.Target) {
		return errors.Newf(errors.ErrInvalidInput, "match '%s': mode %q is not valid for %s targets", m.ID, m.Mode, m.Target)
	}
	return nil
}

// AddRule stores a new rule. An empty id is generated.
func (c *Catalog) AddRule(r types.Rule) (types.Rule, error) {
	if r.ID == "" {
		r.ID = c.newID()
	}
	if err := validateRule(r); err != nil {
		return types.Rule{}, err
	}
	if err := c.rules.Add(r); err != nil {
		return types.Rule{}, err
	}
	return r.Clone(), nil
}

// UpdateRule replaces an existing rule. A rule's kind cannot change while a
// ruleset references it.
func (c *Catalog) UpdateRule(r types.Rule) error {
	if err := validateRule(r); err != nil {
		return err
	}
	old, ok := c.rules.Get(r.ID)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "rule '%s' not found", r.ID)
	}
	if old.Kind() != r.Kind() {
		for _, rs := range c.rulesets.List() {
			for _, inst := range rs.Instances {
				if inst.RuleRef == r.ID {
					return errors.Newf(errors.ErrRulesetKind,
						"rule '%s' is used by ruleset '%s' and cannot change kind", r.ID, rs.ID).
						WithDetail("ruleset", rs.ID)
				}
			}
		}
	}
	return c.rules.Put(r)
}

// DeleteRule removes a rule and its instances in every ruleset.
func (c *Catalog) DeleteRule(id string) error {
	if err := c.rules.Remove(id); err != nil {
		return err
	}
	c.rulesets.UpdateAll(func(rs *types.Ruleset) {
		kept := rs.Instances[:0]
		for _, inst := range rs.Instances {
			if inst.RuleRef != id {
				kept = append(kept, inst)
			}
		}
		rs.Instances = kept
	})
	c.logger.Debug().Str("rule", id).Msg("rule deleted")
	return nil
}

func validateRule(r types.Rule) error {
	switch a := r.Action.(type) {
	case types.ImportAction:
		switch a {
		case types.IncludeFolder, types.ExcludeFolder, types.IncludeFile, types.ExcludeFile:
			return nil
		}
		return errors.Newf(errors.ErrInvalidInput, "rule '%s': unknown import action %q", r.ID, a)
	case types.CompressionFlags:
		return nil
	case types.LineLimit:
		switch a.Mode {
		case types.NoLines, types.HeadN, types.TailN, types.HeadMTailN,
			types.CustomRange, types.RandomN, types.RandomPercent:
			return nil
		}
		return errors.Newf(errors.ErrInvalidInput, "rule '%s': unknown line limit mode %q", r.ID, a.Mode)
	case nil:
		return errors.Newf(errors.ErrInvalidInput, "rule '%s' has no action", r.ID)
	}
	return errors.Newf(errors.ErrInvalidInput, "rule '%s': unsupported action", r.ID)
}

// AddOperation stores a new operation. An empty id is generated.
func (c *Catalog) AddOperation(o types.Operation) (types.Operation, error) {
	if o.ID == "" {
		o.ID = c.newID()
	}
	if err := validateOperation(o); err != nil {
		return types.Operation{}, err
	}
	if err := c.operations.Add(o); err != nil {
		return types.Operation{}, err
	}
	return o.Clone(), nil
}

// UpdateOperation replaces an existing operation.
func (c *Catalog) UpdateOperation(o types.Operation) error {
	if err := validateOperation(o); err != nil {
		return err
	}
	return c.operations.Put(o)
}

// DeleteOperation removes an operation and its instances in every macro.
func (c *Catalog) DeleteOperation(id string) error {
	if err := c.operations.Remove(id); err != nil {
		return err
	}
	c.macros.UpdateAll(func(m *types.Macro) {
		kept := m.Instances[:0]
		for _, inst := range m.Instances {
			if inst.OperationRef != id {
				kept = append(kept, inst)
			}
		}
		m.Instances = kept
	})
	c.logger.Debug().Str("operation", id).Msg("operation deleted")
	return nil
}

func validateOperation(o types.Operation) error {
	if !o.Action.ValidFor(o.Target) {
		return errors.Newf(errors.ErrInvalidInput, "operation '%s': action %q is not valid for target %q", o.ID, o.Action, o.Target)
	}
	return nil
}
