package tree

import (
	"github.com/arthur-debert/dirx/pkg/types"
)

// NodeID identifies a node. IDs are the node path, suffixed when two roots collide.
type NodeID string

// Content is either Unhydrated or Hydrated.
type Content interface {
	isContent()
}

// Unhydrated is a file whose text has not been loaded.
type Unhydrated struct {
	Ref string
}

// Hydrated is a file whose text is available.
type Hydrated struct {
	Text  string
	Lines int
}

func (Unhydrated) isContent() {}
func (Hydrated) isContent()   {}

// Node is a value view of a tree node. File-only fields are zero for directories.
type Node struct {
	ID   NodeID
	Name string
	Path string
	Kind types.NodeKind

	Selected            bool
	Content             Content
	DescriptionOverride string
	LineLimitOverride   *types.LineLimit
	CompressionOverride *types.CompressionFlags
}

// IsFile reports whether the node is a file.
func (n Node) IsFile() bool { return n.Kind == types.NodeFile }

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool { return n.Kind == types.NodeDirectory }

// Text returns the hydrated text, if any.
func (n Node) Text() (string, bool) {
	h, ok := n.Content.(Hydrated)
	if !ok {
		return "", false
	}
	return h.Text, true
}

// TotalLines returns the hydrated line count, or 0.
func (n Node) TotalLines() int {
	if h, ok := n.Content.(Hydrated); ok {
		return h.Lines
	}
	return 0
}

// clone copies override pointers so the result shares nothing mutable with n.
func (n Node) clone() Node {
	if n.LineLimitOverride != nil {
		ll := *n.LineLimitOverride
		n.LineLimitOverride = &ll
	}
	if n.CompressionOverride != nil {
		cf := *n.CompressionOverride
		n.CompressionOverride = &cf
	}
	return n
}
