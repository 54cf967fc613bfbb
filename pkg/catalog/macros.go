package catalog

import (
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

func sequenceOf(inst *types.OperationInstance) *int { return &inst.Sequence }

func operationInstanceID(inst types.OperationInstance) string { return inst.ID }

// AddMacro stores a new macro. Every instance must reference an existing
// operation.
func (c *Catalog) AddMacro(m types.Macro) (types.Macro, error) {
	if m.ID == "" {
		m.ID = c.newID()
	}
	m = c.prepareMacro(m)
	if err := c.validateMacro(m); err != nil {
		return types.Macro{}, err
	}
	if err := c.macros.Add(m); err != nil {
		return types.Macro{}, err
	}
	return m.Clone(), nil
}

// UpdateMacro replaces an existing macro.
func (c *Catalog) UpdateMacro(m types.Macro) error {
	if !c.macros.Has(m.ID) {
		return errors.Newf(errors.ErrMacroNotFound, "macro '%s' not found", m.ID)
	}
	m = c.prepareMacro(m)
	if err := c.validateMacro(m); err != nil {
		return err
	}
	return c.macros.Put(m)
}

// DeleteMacro removes a macro.
func (c *Catalog) DeleteMacro(id string) error {
	if err := c.macros.Remove(id); err != nil {
		return errors.Newf(errors.ErrMacroNotFound, "macro '%s' not found", id)
	}
	c.logger.Debug().Str("macro", id).Msg("macro deleted")
	return nil
}

// CopyMacro duplicates a macro under a new id with fresh instance ids.
func (c *Catalog) CopyMacro(id string) (types.Macro, error) {
	m, ok := c.macros.Get(id)
	if !ok {
		return types.Macro{}, errors.Newf(errors.ErrMacroNotFound, "macro '%s' not found", id)
	}
	m.ID = c.newID()
	m.Name += " (copy)"
	for i := range m.Instances {
		m.Instances[i].ID = c.newID()
	}
	if err := c.macros.Add(m); err != nil {
		return types.Macro{}, err
	}
	return m, nil
}

// AddOperationToMacro appends an enabled instance of operationID, 10 past
// the current highest sequence.
func (c *Catalog) AddOperationToMacro(macroID, operationID string) (types.OperationInstance, error) {
	var added types.OperationInstance
	err := c.macros.Update(macroID, func(m *types.Macro) error {
		if !c.operations.Has(operationID) {
			return errors.Newf(errors.ErrNotFound, "operation '%s' not found", operationID)
		}
		added = types.OperationInstance{
			ID:           c.newID(),
			OperationRef: operationID,
			Sequence:     nextPosition(m.Instances, sequenceOf),
			Enabled:      true,
		}
		m.Instances = append(m.Instances, added)
		sortByPosition(m.Instances, sequenceOf)
		return nil
	})
	if err != nil {
		return types.OperationInstance{}, c.macroErr(macroID, err)
	}
	return added, nil
}

// UpdateOperationInstance changes an instance's sequence or enabled flag.
func (c *Catalog) UpdateOperationInstance(macroID, instanceID string, upd InstanceUpdate) error {
	err := c.macros.Update(macroID, func(m *types.Macro) error {
		i, err := findOperationInstance(m, instanceID)
		if err != nil {
			return err
		}
		if upd.Position != nil {
			m.Instances[i].Sequence = *upd.Position
		}
		if upd.Enabled != nil {
			m.Instances[i].Enabled = *upd.Enabled
		}
		sortByPosition(m.Instances, sequenceOf)
		return nil
	})
	return c.macroErr(macroID, err)
}

// RemoveOperationInstance deletes one instance from a macro.
func (c *Catalog) RemoveOperationInstance(macroID, instanceID string) error {
	err := c.macros.Update(macroID, func(m *types.Macro) error {
		i, err := findOperationInstance(m, instanceID)
		if err != nil {
			return err
		}
		m.Instances = append(m.Instances[:i], m.Instances[i+1:]...)
		return nil
	})
	return c.macroErr(macroID, err)
}

// ReplaceOperationInstance points an instance at another operation.
func (c *Catalog) ReplaceOperationInstance(macroID, instanceID, operationID string) error {
	err := c.macros.Update(macroID, func(m *types.Macro) error {
		i, err := findOperationInstance(m, instanceID)
		if err != nil {
			return err
		}
		if !c.operations.Has(operationID) {
			return errors.Newf(errors.ErrNotFound, "operation '%s' not found", operationID)
		}
		m.Instances[i].OperationRef = operationID
		return nil
	})
	return c.macroErr(macroID, err)
}

// ReorderOperationInstance moves an instance one step up or down.
func (c *Catalog) ReorderOperationInstance(macroID, instanceID string, d Direction) error {
	err := c.macros.Update(macroID, func(m *types.Macro) error {
		i, err := findOperationInstance(m, instanceID)
		if err != nil {
			return err
		}
		reorder(m.Instances, i, d, sequenceOf)
		return nil
	})
	return c.macroErr(macroID, err)
}

func (c *Catalog) prepareMacro(m types.Macro) types.Macro {
	m = m.Clone()
	for i := range m.Instances {
		if m.Instances[i].ID == "" {
			m.Instances[i].ID = c.newID()
		}
	}
	sortByPosition(m.Instances, sequenceOf)
	return m
}

func (c *Catalog) validateMacro(m types.Macro) error {
	for _, inst := range m.Instances {
		if !c.operations.Has(inst.OperationRef) {
			return errors.Newf(errors.ErrNotFound, "macro '%s': operation '%s' not found", m.ID, inst.OperationRef)
		}
	}
	return nil
}

func findOperationInstance(m *types.Macro, instanceID string) (int, error) {
	i := indexByID(m.Instances, instanceID, operationInstanceID)
	if i < 0 {
		return -1, errors.Newf(errors.ErrNotFound, "instance '%s' not found in macro '%s'", instanceID, m.ID)
	}
	return i, nil
}

func (c *Catalog) macroErr(macroID string, err error) error {
	if err == nil {
		return nil
	}
	if !c.macros.Has(macroID) {
		return errors.Newf(errors.ErrMacroNotFound, "macro '%s' not found", macroID)
	}
	return err
}
