package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

//go:embed embedded/defaults.yaml
var defaultsYAML []byte

type seed struct {
	Matches    []seedMatch     `yaml:"matches"`
	Rules      []seedRule      `yaml:"rules"`
	Rulesets   []seedRuleset   `yaml:"rulesets"`
	Operations []seedOperation `yaml:"operations"`
	Macros     []seedMacro     `yaml:"macros"`
	Selected   Selection       `yaml:"selected"`
}

type seedMatch struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Target      types.TargetKind     `yaml:"target"`
	Mode        types.ComparisonMode `yaml:"mode"`
	Values      []string             `yaml:"values"`
}

type seedRule struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Matches     []string           `yaml:"matches"`
	Import      types.ImportAction `yaml:"import"`
	Compression *seedCompression   `yaml:"compression"`
	LineLimit   *seedLineLimit     `yaml:"lineLimit"`
}

type seedCompression struct {
	RemoveEmptyLines bool `yaml:"removeEmptyLines"`
	RemoveComments   bool `yaml:"removeComments"`
	Minify           bool `yaml:"minify"`
}

type seedLineLimit struct {
	Mode   types.LimitMode `yaml:"mode"`
	Params struct {
		N       int     `yaml:"n"`
		M       int     `yaml:"m"`
		Start   int     `yaml:"start"`
		End     int     `yaml:"end"`
		Percent float64 `yaml:"percent"`
	} `yaml:"params"`
}

type seedRuleset struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Kind        types.RuleKind `yaml:"kind"`
	Rules       []struct {
		Rule     string `yaml:"rule"`
		Priority int    `yaml:"priority"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"rules"`
}

type seedOperation struct {
	ID          string                `yaml:"id"`
	Name        string                `yaml:"name"`
	Description string                `yaml:"description"`
	Target      types.OperationTarget `yaml:"target"`
	Action      types.OperationAction `yaml:"action"`
	Matches     []string              `yaml:"matches"`
}

type seedMacro struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Operations  []struct {
		Operation string `yaml:"operation"`
		Sequence  int    `yaml:"sequence"`
		Disabled  bool   `yaml:"disabled"`
	} `yaml:"operations"`
}

func (r seedRule) action() (types.RuleAction, error) {
	switch {
	case r.Import != "":
		return r.Import, nil
	case r.Compression != nil:
		return types.CompressionFlags(*r.Compression), nil
	case r.LineLimit != nil:
		p := r.LineLimit.Params
		return types.LineLimit{
			Mode:   r.LineLimit.Mode,
			Params: types.LimitParams{N: p.N, M: p.M, Start: p.Start, End: p.End, Percent: p.Percent},
		}, nil
	}
	return nil, fmt.Errorf("rule %q has no action", r.ID)
}

// Default returns the built-in catalog with the default rulesets selected.
// It panics if the embedded definitions are invalid.
func Default(opts ...Option) *Catalog {
	c, err := FromYAML(defaultsYAML, opts...)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}

// DefaultYAML returns the embedded definitions of the built-in catalog.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultsYAML...)
}

// FromYAML builds a catalog from seed definitions in the format of
// embedded/defaults.yaml. Condition and instance ids derive from their
// parent ids so they stay stable across loads.
func FromYAML(data []byte, opts ...Option) (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrStateLoad, "failed to parse catalog definitions")
	}

	c := New(opts...)
	for _, sm := range s.Matches {
		m := types.Match{ID: sm.ID, Name: sm.Name, Description: sm.Description, Target: sm.Target, Mode: sm.Mode}
		for i, v := range sm.Values {
			m.Conditions = append(m.Conditions, types.Condition{ID: fmt.Sprintf("%s-c%d", sm.ID, i+1), Value: v})
		}
		if _, err := c.AddMatch(m); err != nil {
			return nil, err
		}
	}
	for _, sr := range s.Rules {
		action, err := sr.action()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid rule definition")
		}
		r := types.Rule{ID: sr.ID, Name: sr.Name, Description: sr.Description, MatchRefs: sr.Matches, Action: action}
		if _, err := c.AddRule(r); err != nil {
			return nil, err
		}
	}
	for _, srs := range s.Rulesets {
		rs := types.Ruleset{ID: srs.ID, Name: srs.Name, Description: srs.Description, Kind: srs.Kind}
		for _, inst := range srs.Rules {
			rs.Instances = append(rs.Instances, types.RuleInstance{
				ID:       srs.ID + "/" + inst.Rule,
				RuleRef:  inst.Rule,
				Priority: inst.Priority,
				Enabled:  !inst.Disabled,
			})
		}
		if _, err := c.AddRuleset(rs); err != nil {
			return nil, err
		}
	}
	for _, so := range s.Operations {
		o := types.Operation{
			ID: so.ID, Name: so.Name, Description: so.Description,
			Target: so.Target, Action: so.Action, MatchRefs: so.Matches,
		}
		if _, err := c.AddOperation(o); err != nil {
			return nil, err
		}
	}
	for _, sm := range s.Macros {
		m := types.Macro{ID: sm.ID, Name: sm.Name, Description: sm.Description}
		for _, inst := range sm.Operations {
			m.Instances = append(m.Instances, types.OperationInstance{
				ID:           sm.ID + "/" + inst.Operation,
				OperationRef: inst.Operation,
				Sequence:     inst.Sequence,
				Enabled:      !inst.Disabled,
			})
		}
		if _, err := c.AddMacro(m); err != nil {
			return nil, err
		}
	}

	for _, kind := range []types.RuleKind{types.RuleImport, types.RuleCompression, types.RuleLineLimit} {
		if err := c.SelectRuleset(kind, s.Selected.Get(kind)); err != nil {
			return nil, err
		}
	}
	c.logger.Debug().
		Int("matches", c.matches.Count()).
		Int("rules", c.rules.Count()).
		Int("rulesets", c.rulesets.Count()).
		Int("operations", c.operations.Count()).
		Int("macros", c.macros.Count()).
		Msg("catalog loaded from definitions")
	return c, nil
}
