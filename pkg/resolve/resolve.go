package resolve

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// Definitions resolves the ids a ruleset refers to. *catalog.Catalog
// satisfies it.
type Definitions interface {
	Match(id string) (types.Match, bool)
	Rule(id string) (types.Rule, bool)
}

// Source tells where an import decision came from.
type Source string

const (
	SourceDefault   Source = "default"
	SourceInherited Source = "inherited"
	SourceRule      Source = "rule"
)

// Decision is the import outcome for one node.
type Decision struct {
	Included bool
	Source   Source
	// RuleID and InstanceID are set when Source is SourceRule.
	RuleID     string
	InstanceID string
	Reason     string
}

// Result is the outcome of an import resolution.
type Result struct {
	// Tree holds the surviving nodes, with the raw tree's ids and order.
	Tree *tree.Tree
	// Decisions has an entry for every node of the raw tree.
	Decisions map[tree.NodeID]Decision
}

// Pruned lists the ids of raw nodes missing from the result tree.
func (r Result) Pruned() []tree.NodeID {
	var out []tree.NodeID
	for id := range r.Decisions {
		if !r.Tree.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Resolver evaluates rulesets. It holds no tree state and is safe for
// concurrent use.
type Resolver struct {
	matcher *matching.Matcher
	defs    Definitions
	logger  zerolog.Logger
}

// New creates a Resolver.
func New(matcher *matching.Matcher, defs Definitions) *Resolver {
	return &Resolver{
		matcher: matcher,
		defs:    defs,
		logger:  logging.GetLogger("resolve"),
	}
}

type boundRule struct {
	instanceID string
	rule       types.Rule
}

// bind resolves the enabled instances of rs in priority order, dropping
// dangling references and rules whose kind differs from the ruleset's.
func (r *Resolver) bind(rs *types.Ruleset, kind types.RuleKind) []boundRule {
	if rs == nil {
		return nil
	}
	var out []boundRule
	for _, inst := range rs.Ordered() {
		rule, ok := r.defs.Rule(inst.RuleRef)
		if !ok {
			r.logger.Debug().Str("ruleset", rs.ID).Str("rule", inst.RuleRef).Msg("skipping dangling rule reference")
			continue
		}
		if rule.Kind() != kind {
			r.logger.Debug().Str("ruleset", rs.ID).Str("rule", rule.ID).Msg("skipping rule of another kind")
			continue
		}
		out = append(out, boundRule{instanceID: inst.ID, rule: rule})
	}
	return out
}

func (r *Resolver) hits(n tree.Node, rule types.Rule) bool {
	return r.matcher.MatchesAny(n, rule.MatchRefs, r.defs.Match)
}

// Import prunes raw with the import ruleset rs. A nil ruleset, or one
// without enabled rules, keeps every node. raw is not modified.
func (r *Resolver) Import(raw *tree.Tree, rs *types.Ruleset) Result {
	rules := r.bind(rs, types.RuleImport)
	decisions := make(map[tree.NodeID]Decision, raw.Len())

	raw.Walk(func(n tree.Node, _ int) bool {
		d := Decision{Included: true, Source: SourceDefault, Reason: "included by default"}
		if parent, ok := raw.Parent(n.ID); ok {
			pd := decisions[parent]
			d = Decision{Included: pd.Included, Source: SourceInherited, Reason: "inherited from " + string(parent)}
		}
		for _, b := range rules {
			action := b.rule.Action.(types.ImportAction)
			if !action.AppliesTo(n.Kind) || !r.hits(n, b.rule) {
				continue
			}
			d = Decision{
				Included:   action.Includes(),
				Source:     SourceRule,
				RuleID:     b.rule.ID,
				InstanceID: b.instanceID,
				Reason:     fmt.Sprintf("%s by rule %q", verb(action.Includes()), ruleLabel(b.rule)),
			}
			break
		}
		decisions[n.ID] = d
		return true
	})

	// files have no children, so only directories are kept for a survivor below
	survives := make(map[tree.NodeID]bool, len(decisions))
	var mark func(id tree.NodeID) bool
	mark = func(id tree.NodeID) bool {
		keep := decisions[id].Included
		for _, child := range raw.Children(id) {
			if mark(child) {
				keep = true
			}
		}
		survives[id] = keep
		return keep
	}
	for _, root := range raw.Roots() {
		mark(root)
	}

	pruned := raw.Filter(func(n tree.Node) bool { return survives[n.ID] })
	r.logger.Debug().
		Int("nodes", raw.Len()).
		Int("kept", pruned.Len()).
		Int("rules", len(rules)).
		Msg("import resolved")
	return Result{Tree: pruned, Decisions: decisions}
}

func verb(included bool) string {
	if included {
		return "included"
	}
	return "excluded"
}

func ruleLabel(rule types.Rule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return rule.ID
}

// Compression returns the flags that apply to n. A non-empty override on the
// node is used as is; otherwise the flags of every matching rule of rs are
// combined.
func (r *Resolver) Compression(n tree.Node, rs *types.Ruleset) types.CompressionFlags {
	if n.CompressionOverride != nil && !n.CompressionOverride.IsZero() {
		return *n.CompressionOverride
	}
	var flags types.CompressionFlags
	for _, b := range r.bind(rs, types.RuleCompression) {
		if r.hits(n, b.rule) {
			flags = flags.Or(b.rule.Action.(types.CompressionFlags))
		}
	}
	return flags
}

// LineLimit returns the policy that applies to n: the node's override when
// set, else the first matching rule of rs. ok is false when neither applies.
func (r *Resolver) LineLimit(n tree.Node, rs *types.Ruleset) (limit types.LineLimit, ok bool) {
	limit, _, ok = r.LineLimitSource(n, rs)
	return limit, ok
}

// LineLimitSource is LineLimit plus a label naming where the policy came
// from: OverrideLabel or the rule's name.
func (r *Resolver) LineLimitSource(n tree.Node, rs *types.Ruleset) (types.LineLimit, string, bool) {
	if n.LineLimitOverride != nil {
		return *n.LineLimitOverride, OverrideLabel, true
	}
	for _, b := range r.bind(rs, types.RuleLineLimit) {
		if r.hits(n, b.rule) {
			return b.rule.Action.(types.LineLimit), ruleLabel(b.rule), true
		}
	}
	return types.LineLimit{}, "", false
}

// OverrideLabel names a per-file override in LineLimitSource.
const OverrideLabel = "file override"
