package style_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/style"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want style.Format
	}{
		{"", style.FormatAuto},
		{"auto", style.FormatAuto},
		{"terminal", style.FormatTerminal},
		{"plain", style.FormatText},
		{"JSON", style.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := style.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := style.ParseFormat("yaml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolveNonFileWriterIsText(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, style.FormatText, style.FormatAuto.Resolve(&buf))
	assert.Equal(t, style.FormatJSON, style.FormatJSON.Resolve(&buf))
}

func TestPlainTree(t *testing.T) {
	tr := tree.MustFromPaths("proj/src/main.go", "proj/src/util.go", "proj/README.md")
	require.NoError(t, tr.SetSelected("proj/src/main.go", true))
	require.NoError(t, tr.SetLineLimitOverride("proj/README.md", &types.LineLimit{Mode: types.HeadN, Params: types.LimitParams{N: 5}}))

	r := style.NewRenderer(style.FormatText)
	want := "" +
		"└── proj/\n" +
		"    ├── src/\n" +
		"    │   ├── main.go ✓\n" +
		"    │   └── util.go\n" +
		"    └── README.md [first 5 lines]\n"
	assert.Equal(t, want, r.Tree(tr))
}

func TestPlainMessages(t *testing.T) {
	r := style.NewRenderer(style.FormatText)
	assert.True(t, r.Plain())
	assert.Equal(t, "✓ saved", r.Success("saved"))
	assert.Equal(t, "! careful", r.Warning("careful"))
	assert.Equal(t, "✗ failed", r.Error("failed"))
}

func TestDecisionsTable(t *testing.T) {
	decisions := map[tree.NodeID]resolve.Decision{
		"p":              {Included: true, Source: resolve.SourceDefault},
		"p/node_modules": {Source: resolve.SourceRule, RuleID: "r-exclude-deps-by-name", Reason: "matched"},
	}
	r := style.NewRenderer(style.FormatText)

	out, err := r.Decisions(decisions, true)
	require.NoError(t, err)
	assert.Contains(t, out, "p/node_modules")
	assert.Contains(t, out, "r-exclude-deps-by-name")
	assert.NotContains(t, out, "include")

	out, err = r.Decisions(decisions, false)
	require.NoError(t, err)
	assert.Contains(t, out, "include")
}
