package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/resolve"
	"github.com/arthur-debert/dirx/pkg/transform"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

const (
	// DefaultHeader opens a merged export when no header is configured.
	DefaultHeader = "// dirx merged export"
	// EmptyContentPlaceholder stands in for files without text.
	EmptyContentPlaceholder = "[file content is empty or could not be loaded]"

	stampLayout = "20060102-150405"
)

// Document is rendered text plus a suggested file name.
type Document struct {
	Name string
	Text string
}

// Options selects the rulesets and layout of a merged export. Nil rulesets
// are reported as "none" and apply nothing.
type Options struct {
	Header      string
	IncludeTree bool

	Import      *types.Ruleset
	Compression *types.Ruleset
	LineLimit   *types.Ruleset
}

// Exporter renders documents.
type Exporter struct {
	resolver *resolve.Resolver
	now      func() time.Time
	logger   zerolog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock replaces time.Now for timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an Exporter.
func New(resolver *resolve.Resolver, opts ...Option) *Exporter {
	e := &Exporter{
		resolver: resolver,
		now:      time.Now,
		logger:   logging.GetLogger("export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileText is the exported text of one file after both transform stages.
// info describes the line limit applied, or is empty.
func (e *Exporter) FileText(n tree.Node, opts Options) (text, info string) {
	text, _ = n.Text()
	if text == "" {
		text = EmptyContentPlaceholder
	}
	text = transform.Compress(text, e.resolver.Compression(n, opts.Compression))
	if limit, label, ok := e.resolver.LineLimitSource(n, opts.LineLimit); ok {
		text = transform.LimitLines(text, limit)
		info = fmt.Sprintf("%s (%s)", label, limit.Summary())
	}
	return text, info
}

// Merged concatenates every selected file of t into one document. It fails
// with ErrNoSelection when nothing is selected.
func (e *Exporter) Merged(t *tree.Tree, opts Options) (Document, error) {
	files := t.SelectedFiles()
	if len(files) == 0 {
		return Document{}, errors.New(errors.ErrNoSelection, "no files selected for export")
	}

	now := e.now()
	header := opts.Header
	if header == "" {
		header = DefaultHeader
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header)
	fmt.Fprintf(&b, "// Time: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "// Files: %d\n", len(files))
	fmt.Fprintf(&b, "// Import ruleset: %s\n", rulesetName(opts.Import))
	fmt.Fprintf(&b, "// Compression ruleset: %s\n", rulesetName(opts.Compression))
	fmt.Fprintf(&b, "// Line limit ruleset: %s\n\n", rulesetName(opts.LineLimit))

	b.WriteString("// File list:\n")
	for _, n := range files {
		fmt.Fprintf(&b, "// - %s\n", n.Path)
	}
	b.WriteString("\n// --- file contents ---\n\n")

	for _, n := range files {
		fmt.Fprintf(&b, "// Path: %s\n", n.Path)
		if n.DescriptionOverride != "" {
			fmt.Fprintf(&b, "// Description: %s\n", n.DescriptionOverride)
		}
		text, info := e.FileText(n, opts)
		if info != "" {
			fmt.Fprintf(&b, "// Line limit: %s\n", info)
		}
		fmt.Fprintf(&b, "%s\n// --- end of %s ---\n\n", text, n.Path)
	}

	if opts.IncludeTree {
		b.WriteString("// --- directory tree ---\n")
		b.WriteString(RenderTree(t))
	}

	e.logger.Info().Int("files", len(files)).Int("bytes", b.Len()).Msg("merged export rendered")
	return Document{Name: fmt.Sprintf("dirx-merged-%s.txt", now.Format(stampLayout)), Text: b.String()}, nil
}

// Tree renders t as a directory tree document.
func (e *Exporter) Tree(t *tree.Tree) Document {
	return Document{
		Name: fmt.Sprintf("dirx-tree-%s.txt", e.now().Format(stampLayout)),
		Text: RenderTree(t),
	}
}

// Separate renders every selected file on its own. Names are the node paths.
func (e *Exporter) Separate(t *tree.Tree, opts Options) ([]Document, error) {
	files := t.SelectedFiles()
	if len(files) == 0 {
		return nil, errors.New(errors.ErrNoSelection, "no files selected for export")
	}
	docs := make([]Document, 0, len(files))
	for _, n := range files {
		text, _ := e.FileText(n, opts)
		docs = append(docs, Document{Name: n.Path, Text: text})
	}
	return docs, nil
}

func rulesetName(rs *types.Ruleset) string {
	if rs == nil {
		return "none"
	}
	if rs.Name == "" {
		return rs.ID
	}
	return rs.Name
}

// RenderTree draws t with box connectors. Directories end in "/" and
// selected files are marked.
func RenderTree(t *tree.Tree) string {
	var b strings.Builder
	var draw func(ids []tree.NodeID, prefix string)
	draw = func(ids []tree.NodeID, prefix string) {
		for i, id := range ids {
			n, _ := t.Get(id)
			last := i == len(ids)-1

			b.WriteString(prefix)
			if last {
				b.WriteString("└── ")
			} else {
				b.WriteString("├── ")
			}
			b.WriteString(n.Name)
			if n.IsDir() {
				b.WriteString("/")
			} else if n.Selected {
				b.WriteString(" (selected)")
			}
			b.WriteString("\n")

			if n.IsDir() {
				next := prefix + "│   "
				if last {
					next = prefix + "    "
				}
				draw(t.Children(id), next)
			}
		}
	}
	draw(t.Roots(), "")
	return b.String()
}
