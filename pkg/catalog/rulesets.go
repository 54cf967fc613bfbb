package catalog

import (
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

func priorityOf(inst *types.RuleInstance) *int { return &inst.Priority }

func ruleInstanceID(inst types.RuleInstance) string { return inst.ID }

// AddRuleset stores a new ruleset. Every instance must reference an existing
// rule of the ruleset's kind. Empty ids are generated and instances are kept
// sorted by priority.
func (c *Catalog) AddRuleset(rs types.Ruleset) (types.Ruleset, error) {
	if rs.ID == "" {
		rs.ID = c.newID()
	}
	rs = c.prepareRuleset(rs)
	if err := c.validateRuleset(rs); err != nil {
		return types.Ruleset{}, err
	}
	if err := c.rulesets.Add(rs); err != nil {
		return types.Ruleset{}, err
	}
	return rs.Clone(), nil
}

// UpdateRuleset replaces an existing ruleset. If the kind changes while the
// ruleset is selected, the selection for the old kind falls back to the
// default.
func (c *Catalog) UpdateRuleset(rs types.Ruleset) error {
	old, ok := c.rulesets.Get(rs.ID)
	if !ok {
		return errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", rs.ID)
	}
	rs = c.prepareRuleset(rs)
	if err := c.validateRuleset(rs); err != nil {
		return err
	}
	if err := c.rulesets.Put(rs); err != nil {
		return err
	}
	if old.Kind != rs.Kind && c.selection.Get(old.Kind) == rs.ID {
		c.resetSelection(old.Kind)
	}
	return nil
}

// DeleteRuleset removes a ruleset. A selection pointing at it falls back to
// the built-in default of that kind, or to none when that is gone too.
func (c *Catalog) DeleteRuleset(id string) error {
	rs, ok := c.rulesets.Get(id)
	if !ok {
		return errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", id)
	}
	if err := c.rulesets.Remove(id); err != nil {
		return err
	}
	if c.selection.Get(rs.Kind) == id {
		c.resetSelection(rs.Kind)
	}
	c.logger.Debug().Str("ruleset", id).Msg("ruleset deleted")
	return nil
}

func (c *Catalog) resetSelection(kind types.RuleKind) {
	fallback := defaultRulesetID(kind)
	if !c.rulesets.Has(fallback) {
		fallback = ""
	}
	c.selection.set(kind, fallback)
	c.logger.Info().Str("kind", string(kind)).Str("ruleset", fallback).Msg("selected ruleset reset")
}

// CopyRuleset duplicates a ruleset under a new id with fresh instance ids.
func (c *Catalog) CopyRuleset(id string) (types.Ruleset, error) {
	rs, ok := c.rulesets.Get(id)
	if !ok {
		return types.Ruleset{}, errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", id)
	}
	rs.ID = c.newID()
	rs.Name += " (copy)"
	for i := range rs.Instances {
		rs.Instances[i].ID = c.newID()
	}
	if err := c.rulesets.Add(rs); err != nil {
		return types.Ruleset{}, err
	}
	return rs, nil
}

// AddRuleToRuleset appends an enabled instance of ruleID, 10 past the
// current highest priority.
func (c *Catalog) AddRuleToRuleset(rulesetID, ruleID string) (types.RuleInstance, error) {
	var added types.RuleInstance
	err := c.rulesets.Update(rulesetID, func(rs *types.Ruleset) error {
		if err := c.checkRuleKind(rs.Kind, ruleID); err != nil {
			return err
		}
		added = types.RuleInstance{
			ID:       c.newID(),
			RuleRef:  ruleID,
			Priority: nextPosition(rs.Instances, priorityOf),
			Enabled:  true,
		}
		rs.Instances = append(rs.Instances, added)
		sortByPosition(rs.Instances, priorityOf)
		return nil
	})
	if err != nil {
		return types.RuleInstance{}, c.rulesetErr(rulesetID, err)
	}
	return added, nil
}

// UpdateRuleInstance changes an instance's priority or enabled flag.
func (c *Catalog) UpdateRuleInstance(rulesetID, instanceID string, upd InstanceUpdate) error {
	err := c.rulesets.Update(rulesetID, func(rs *types.Ruleset) error {
		i, err := findRuleInstance(rs, instanceID)
		if err != nil {
			return err
		}
		if upd.Position != nil {
			rs.Instances[i].Priority = *upd.Position
		}
		if upd.Enabled != nil {
			rs.Instances[i].Enabled = *upd.Enabled
		}
		sortByPosition(rs.Instances, priorityOf)
		return nil
	})
	return c.rulesetErr(rulesetID, err)
}

// RemoveRuleInstance deletes one instance from a ruleset.
func (c *Catalog) RemoveRuleInstance(rulesetID, instanceID string) error {
	err := c.rulesets.Update(rulesetID, func(rs *types.Ruleset) error {
		i, err := findRuleInstance(rs, instanceID)
		if err != nil {
			return err
		}
		rs.Instances = append(rs.Instances[:i], rs.Instances[i+1:]...)
		return nil
	})
	return c.rulesetErr(rulesetID, err)
}

// ReplaceRuleInstance points an instance at another rule of the same kind,
// keeping its priority and enabled flag.
func (c *Catalog) ReplaceRuleInstance(rulesetID, instanceID, ruleID string) error {
	err := c.rulesets.Update(rulesetID, func(rs *types.Ruleset) error {
		i, err := findRuleInstance(rs, instanceID)
		if err != nil {
			return err
		}
		if err := c.checkRuleKind(rs.Kind, ruleID); err != nil {
			return err
		}
		rs.Instances[i].RuleRef = ruleID
		return nil
	})
	return c.rulesetErr(rulesetID, err)
}

// ReorderRuleInstance moves an instance one step up or down. Moving past
// either end is a no-op.
func (c *Catalog) ReorderRuleInstance(rulesetID, instanceID string, d Direction) error {
	err := c.rulesets.Update(rulesetID, func(rs *types.Ruleset) error {
		i, err := findRuleInstance(rs, instanceID)
		if err != nil {
			return err
		}
		reorder(rs.Instances, i, d, priorityOf)
		return nil
	})
	return c.rulesetErr(rulesetID, err)
}

func (c *Catalog) prepareRuleset(rs types.Ruleset) types.Ruleset {
	rs = rs.Clone()
	for i := range rs.Instances {
		if rs.Instances[i].ID == "" {
			rs.Instances[i].ID = c.newID()
		}
	}
	sortByPosition(rs.Instances, priorityOf)
	return rs
}

func (c *Catalog) validateRuleset(rs types.Ruleset) error {
	if !validKind(rs.Kind) {
		return errors.Newf(errors.ErrInvalidInput, "ruleset '%s': unknown kind %q", rs.ID, rs.Kind)
	}
	for _, inst := range rs.Instances {
		if err := c.checkRuleKind(rs.Kind, inst.RuleRef); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) checkRuleKind(kind types.RuleKind, ruleID string) error {
	rule, ok := c.rules.Get(ruleID)
	if !ok {
		return errors.Newf(errors.ErrNotFound, "rule '%s' not found", ruleID)
	}
	if rule.Kind() != kind {
		return errors.Newf(errors.ErrRulesetKind, "rule '%s' is a %s rule, ruleset expects %s", ruleID, rule.Kind(), kind).
			WithDetail("rule", ruleID)
	}
	return nil
}

func findRuleInstance(rs *types.Ruleset, instanceID string) (int, error) {
	i := indexByID(rs.Instances, instanceID, ruleInstanceID)
	if i < 0 {
		return -1, errors.Newf(errors.ErrNotFound, "instance '%s' not found in ruleset '%s'", instanceID, rs.ID)
	}
	return i, nil
}

// rulesetErr maps the registry's generic not-found onto the ruleset code.
func (c *Catalog) rulesetErr(rulesetID string, err error) error {
	if err == nil {
		return nil
	}
	if !c.rulesets.Has(rulesetID) {
		return errors.Newf(errors.ErrRulesetNotFound, "ruleset '%s' not found", rulesetID)
	}
	return err
}
