package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// RuleKind is the discriminant shared by rules and rulesets.
type RuleKind string

const (
	RuleImport      RuleKind = "import"
	RuleCompression RuleKind = "compression"
	RuleLineLimit   RuleKind = "line_limit"
)

// RuleAction is the kind-specific payload of a Rule. The set of
// implementations is closed: ImportAction, CompressionFlags and LineLimit.
type RuleAction interface {
	Kind() RuleKind
	isRuleAction()
}

// ImportAction decides inclusion for the nodes it applies to.
type ImportAction string

const (
	IncludeFolder ImportAction = "include_folder"
	ExcludeFolder ImportAction = "exclude_folder"
	IncludeFile   ImportAction = "include_file"
	ExcludeFile   ImportAction = "exclude_file"
)

func (ImportAction) Kind() RuleKind { return RuleImport }
func (ImportAction) isRuleAction()  {}

// AppliesTo reports whether the action concerns nodes of kind k.
func (a ImportAction) AppliesTo(k NodeKind) bool {
	switch a {
	case IncludeFolder, ExcludeFolder:
		return k == NodeDirectory
	case IncludeFile, ExcludeFile:
		return k == NodeFile
	}
	return false
}

// Includes reports whether the action keeps the node.
func (a ImportAction) Includes() bool {
	return a == IncludeFolder || a == IncludeFile
}

// CompressionFlags are OR-combined across every matching compression rule.
type CompressionFlags struct {
	RemoveEmptyLines bool `json:"removeEmptyLines"`
	RemoveComments   bool `json:"removeComments"`
	Minify           bool `json:"minify"`
}

func (CompressionFlags) Kind() RuleKind { return RuleCompression }
func (CompressionFlags) isRuleAction()  {}

// IsZero reports whether no flag is set.
func (f CompressionFlags) IsZero() bool {
	return !f.RemoveEmptyLines && !f.RemoveComments && !f.Minify
}

// Or merges two flag sets.
func (f CompressionFlags) Or(o CompressionFlags) CompressionFlags {
	return CompressionFlags{
		RemoveEmptyLines: f.RemoveEmptyLines || o.RemoveEmptyLines,
		RemoveComments:   f.RemoveComments || o.RemoveComments,
		Minify:           f.Minify || o.Minify,
	}
}

// String lists the set flags, or "none".
func (f CompressionFlags) String() string {
	var parts []string
	if f.RemoveEmptyLines {
		parts = append(parts, "remove-empty-lines")
	}
	if f.RemoveComments {
		parts = append(parts, "remove-comments")
	}
	if f.Minify {
		parts = append(parts, "minify")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// LimitMode selects a line-limit strategy.
type LimitMode string

const (
	NoLines       LimitMode = "no_lines"
	HeadN         LimitMode = "head_n"
	TailN         LimitMode = "tail_n"
	HeadMTailN    LimitMode = "head_m_tail_n"
	CustomRange   LimitMode = "custom_range"
	RandomN       LimitMode = "random_n"
	RandomPercent LimitMode = "random_percent"
)

// LimitParams holds the parameters of every mode; each mode reads its own.
type LimitParams struct {
	N       int     `json:"n,omitempty"`
	M       int     `json:"m,omitempty"`
	Start   int     `json:"start,omitempty"`
	End     int     `json:"end,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// LineLimit is a line-limit policy.
type LineLimit struct {
	Mode   LimitMode   `json:"mode"`
	Params LimitParams `json:"params"`
}

func (LineLimit) Kind() RuleKind { return RuleLineLimit }
func (LineLimit) isRuleAction()  {}

// Summary renders the policy for export headers, e.g. "head 20".
func (l LineLimit) Summary() string {
	p := l.Params
	switch l.Mode {
	case NoLines:
		return "no lines"
	case HeadN:
		return fmt.Sprintf("first %d lines", p.N)
	case TailN:
		return fmt.Sprintf("last %d lines", p.N)
	case HeadMTailN:
		return fmt.Sprintf("first %d and last %d lines", p.M, p.N)
	case CustomRange:
		return fmt.Sprintf("lines %d-%d", p.Start, p.End)
	case RandomN:
		return fmt.Sprintf("%d lines", p.N)
	case RandomPercent:
		return fmt.Sprintf("%g%% of lines", p.Percent)
	}
	return string(l.Mode)
}

// Rule is a named unit of behavior referencing one or more Matches.
type Rule struct {
	ID          string
	Name        string
	Description string
	MatchRefs   []string
	Action      RuleAction
}

// Kind returns the kind of the rule's action, or "" when unset.
func (r Rule) Kind() RuleKind {
	if r.Action == nil {
		return ""
	}
	return r.Action.Kind()
}

// Clone returns a copy that shares no slices with r.
func (r Rule) Clone() Rule {
	r.MatchRefs = append([]string(nil), r.MatchRefs...)
	return r
}

// ruleJSON is the persisted shape of a Rule. Exactly one payload field is set.
type ruleJSON struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Kind        RuleKind          `json:"kind"`
	MatchRefs   []string          `json:"matchRefs"`
	Import      ImportAction      `json:"import,omitempty"`
	Compression *CompressionFlags `json:"compression,omitempty"`
	LineLimit   *LineLimit        `json:"lineLimit,omitempty"`
}

// MarshalJSON tags the payload with its kind.
func (r Rule) MarshalJSON() ([]byte, error) {
	out := ruleJSON{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Kind:        r.Kind(),
		MatchRefs:   r.MatchRefs,
	}
	switch a := r.Action.(type) {
	case ImportAction:
		out.Import = a
	case CompressionFlags:
		out.Compression = &a
	case LineLimit:
		out.LineLimit = &a
	case nil:
		return nil, fmt.Errorf("rule %q has no action", r.ID)
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the payload selected by kind.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var in ruleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	rule := Rule{ID: in.ID, Name: in.Name, Description: in.Description, MatchRefs: in.MatchRefs}
	switch in.Kind {
	case RuleImport:
		rule.Action = in.Import
	case RuleCompression:
		if in.Compression == nil {
			return fmt.Errorf("rule %q: missing compression payload", in.ID)
		}
		rule.Action = *in.Compression
	case RuleLineLimit:
		if in.LineLimit == nil {
			return fmt.Errorf("rule %q: missing lineLimit payload", in.ID)
		}
		rule.Action = *in.LineLimit
	default:
		return fmt.Errorf("rule %q: unknown kind %q", in.ID, in.Kind)
	}
	*r = rule
	return nil
}

// RuleInstance places a Rule inside a Ruleset. Lower priority wins.
type RuleInstance struct {
	ID       string `json:"id"`
	RuleRef  string `json:"ruleRef"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
}

// Ruleset is a priority-ordered collection of rules of a single kind.
type Ruleset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Kind        RuleKind       `json:"kind"`
	Instances   []RuleInstance `json:"instances"`
}

// Ordered returns the enabled instances sorted by ascending priority.
// Instances with equal priority keep their list order.
func (rs Ruleset) Ordered() []RuleInstance {
	out := make([]RuleInstance, 0, len(rs.Instances))
	for _, inst := range rs.Instances {
		if inst.Enabled {
			out = append(out, inst)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Clone returns a copy that shares no slices with rs.
func (rs Ruleset) Clone() Ruleset {
	rs.Instances = append([]RuleInstance(nil), rs.Instances...)
	return rs
}
