package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetAccepts(t *testing.T) {
	assert.True(t, TargetFolder.Accepts(NodeDirectory))
	assert.False(t, TargetFolder.Accepts(NodeFile))
	assert.True(t, TargetFile.Accepts(NodeFile))
	assert.False(t, TargetFile.Accepts(NodeDirectory))
	assert.False(t, TargetKind("other").Accepts(NodeFile))
}

func TestComparisonModeValidFor(t *testing.T) {
	assert.True(t, SuffixExact.ValidFor(TargetFile))
	assert.False(t, SuffixExact.ValidFor(TargetFolder))
	assert.True(t, PathWildcard.ValidFor(TargetFolder))
	assert.False(t, ComparisonMode("fuzzy").ValidFor(TargetFile))
}

func TestImportActionAppliesTo(t *testing.T) {
	assert.True(t, ExcludeFolder.AppliesTo(NodeDirectory))
	assert.False(t, ExcludeFolder.AppliesTo(NodeFile))
	assert.True(t, IncludeFile.AppliesTo(NodeFile))
	assert.True(t, IncludeFile.Includes())
	assert.False(t, ExcludeFile.Includes())
}

func TestOperationActionValidFor(t *testing.T) {
	assert.True(t, Check.ValidFor(TargetMatchedFile))
	assert.False(t, Check.ValidFor(TargetMatchedFolderContents))
	assert.True(t, Invert.ValidFor(TargetMatchedFolderContents))
	assert.False(t, SelectAll.ValidFor(TargetMatchedFile))
}

func TestCompressionFlags(t *testing.T) {
	a := CompressionFlags{RemoveEmptyLines: true}
	b := CompressionFlags{RemoveComments: true}

	merged := a.Or(b)
	assert.Equal(t, CompressionFlags{RemoveEmptyLines: true, RemoveComments: true}, merged)
	assert.True(t, CompressionFlags{}.IsZero())
	assert.False(t, merged.IsZero())
	assert.Equal(t, "remove-empty-lines,remove-comments", merged.String())
	assert.Equal(t, "none", CompressionFlags{}.String())
}

func TestLineLimitSummary(t *testing.T) {
	assert.Equal(t, "first 20 lines", LineLimit{Mode: HeadN, Params: LimitParams{N: 20}}.Summary())
	assert.Equal(t, "first 5 and last 3 lines", LineLimit{Mode: HeadMTailN, Params: LimitParams{M: 5, N: 3}}.Summary())
	assert.Equal(t, "50% of lines", LineLimit{Mode: RandomPercent, Params: LimitParams{Percent: 50}}.Summary())
	assert.Equal(t, "no lines", LineLimit{Mode: NoLines}.Summary())
}

func TestRuleJSON(t *testing.T) {
	rules := []Rule{
		{ID: "r1", Name: "exclude vcs", MatchRefs: []string{"m1"}, Action: ExcludeFolder},
		{ID: "r2", Name: "strip", MatchRefs: []string{"m2"}, Action: CompressionFlags{RemoveComments: true}},
		{ID: "r3", Name: "tail logs", MatchRefs: []string{"m3"}, Action: LineLimit{Mode: TailN, Params: LimitParams{N: 100}}},
	}

	data, err := json.Marshal(rules)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"line_limit"`)

	var back []Rule
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rules, back)
}

func TestRuleJSONErrors(t *testing.T) {
	_, err := json.Marshal(Rule{ID: "r"})
	assert.Error(t, err)

	var r Rule
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","kind":"nope"}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","kind":"compression"}`), &r))
}

func TestRulesetOrdered(t *testing.T) {
	rs := Ruleset{Instances: []RuleInstance{
		{ID: "a", Priority: 100, Enabled: true},
		{ID: "b", Priority: 5, Enabled: true},
		{ID: "c", Priority: 1, Enabled: false},
		{ID: "d", Priority: 5, Enabled: true},
	}}

	ordered := rs.Ordered()
	ids := make([]string, 0, len(ordered))
	for _, inst := range ordered {
		ids = append(ids, inst.ID)
	}
	assert.Equal(t, []string{"b", "d", "a"}, ids)
}

func TestMacroOrdered(t *testing.T) {
	m := Macro{Instances: []OperationInstance{
		{ID: "x", Sequence: 20, Enabled: true},
		{ID: "y", Sequence: 10, Enabled: true},
		{ID: "z", Sequence: 0, Enabled: false},
	}}

	ordered := m.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, "y", ordered[0].ID)
	assert.Equal(t, "x", ordered[1].ID)
}

func TestCloneDoesNotAlias(t *testing.T) {
	rs := Ruleset{Instances: []RuleInstance{{ID: "a"}}}
	cp := rs.Clone()
	cp.Instances[0].ID = "changed"
	assert.Equal(t, "a", rs.Instances[0].ID)

	m := Match{Conditions: []Condition{{ID: "c", Value: ".git"}}}
	mc := m.Clone()
	mc.Conditions[0].Value = "x"
	assert.Equal(t, ".git", m.Conditions[0].Value)
}
