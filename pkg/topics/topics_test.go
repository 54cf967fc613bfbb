package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dirx/pkg/topics"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"matching.md":      {Data: []byte("# Matching\n")},
		"export.txt":       {Data: []byte("export notes")},
		"option-format.md": {Data: []byte("# --format\n")},
		"nested/extra.md":  {Data: []byte("nested")},
		"ignored.json":     {Data: []byte("{}")},
	}
}

func TestLoad(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"export", "extra", "matching", "option-format"}, m.Names())

	tp, ok := m.Get("matching")
	require.True(t, ok)
	assert.Equal(t, ".md", tp.Ext)
	assert.Equal(t, "# Matching\n", m.Render(tp))

	_, ok = m.Get("ignored")
	assert.False(t, ok)
}

func TestCustomExtensions(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ignored"}, m.Names())
}

func TestFlagStyleLookup(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{})
	require.NoError(t, err)

	for _, name := range []string{"--format", "-format", "format", "option-format"} {
		tp, ok := m.Get(name)
		assert.True(t, ok, name)
		assert.Equal(t, "option-format", tp.Name)
	}
}

func TestList(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.List(&buf, "dirx")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  export\n  extra\n  matching\n")
	assert.Contains(t, out, "Option topics:\n  --format\n")
	assert.Contains(t, out, "'dirx help <topic>'")
}

func TestHelpCommand(t *testing.T) {
	m, err := topics.Load(testFS(), topics.Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "dirx"}
	root.AddCommand(&cobra.Command{Use: "tree", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help", "export"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "export notes", buf.String())

	buf.Reset()
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Available help topics:")
}

func TestBuiltinTopics(t *testing.T) {
	m, err := topics.Load(topics.Builtin(), topics.Options{})
	require.NoError(t, err)
	for _, name := range []string{"matching", "rulesets", "line-limits", "macros", "export", "configuration"} {
		_, ok := m.Get(name)
		assert.True(t, ok, name)
	}
	_, ok := m.Get("--fixture")
	assert.True(t, ok)
}

func TestGlamourSkipsNonMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
