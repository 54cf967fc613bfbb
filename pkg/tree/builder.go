package tree

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

// NoParent is passed to the Builder to add a root node.
const NoParent NodeID = ""

// Builder assembles a raw tree. Node paths are the parent path joined with
// the node name by "/". Ids equal paths except below a renamed duplicate
// root, whose descendants carry the root's id as prefix.
type Builder struct {
	t *Tree
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{t: &Tree{index: make(map[NodeID]int)}}
}

// AddDir adds a directory under parent.
func (b *Builder) AddDir(parent NodeID, name string) (NodeID, error) {
	return b.add(parent, name, types.NodeDirectory, "")
}

// AddFile adds an unhydrated file under parent. An empty ref defaults to the path.
func (b *Builder) AddFile(parent NodeID, name, ref string) (NodeID, error) {
	return b.add(parent, name, types.NodeFile, ref)
}

func (b *Builder) add(parent NodeID, name string, kind types.NodeKind, ref string) (NodeID, error) {
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "node name cannot be empty")
	}

	parentIdx := noParent
	path := name
	id := NodeID(name)
	if parent != NoParent {
		pi, ok := b.t.lookup(parent)
		if !ok {
			return "", errors.Newf(errors.ErrNotFound, "parent %q not found", parent)
		}
		if b.t.entries[pi].node.Kind != types.NodeDirectory {
			return "", errors.Newf(errors.ErrInvalidInput, "parent %q is not a directory", parent)
		}
		parentIdx = pi
		path = b.t.entries[pi].node.Path + "/" + name
		id = parent + NodeID("/"+name)
	}

	if b.t.Has(id) {
		if parentIdx != noParent {
			return "", errors.Newf(errors.ErrAlreadyExists, "node %q already exists", id)
		}
		// two roots with the same name
		for n := 2; b.t.Has(id); n++ {
			id = NodeID(fmt.Sprintf("%s#%d", path, n))
		}
	}

	n := Node{ID: id, Name: name, Path: path, Kind: kind}
	if kind == types.NodeFile {
		if ref == "" {
			ref = path
		}
		n.Content = Unhydrated{Ref: ref}
	}
	b.t.add(n, parentIdx)
	return id, nil
}

// Build returns the assembled tree. The builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	t := b.t
	b.t = nil
	return t
}

// FromPaths builds a tree from slash-separated paths. Entries ending in "/"
// are directories; intermediate directories are created as needed.
func FromPaths(paths ...string) (*Tree, error) {
	b := NewBuilder()
	for _, p := range paths {
		isDir := strings.HasSuffix(p, "/")
		parts := strings.Split(strings.Trim(p, "/"), "/")
		parent := NoParent
		for i, part := range parts {
			id := NodeID(strings.Join(parts[:i+1], "/"))
			last := i == len(parts)-1
			if b.t.Has(id) {
				parent = id
				continue
			}
			var err error
			if last && !isDir {
				_, err = b.AddFile(parent, part, "")
			} else {
				_, err = b.AddDir(parent, part)
			}
			if err != nil {
				return nil, err
			}
			parent = id
		}
	}
	return b.Build(), nil
}

// MustFromPaths is FromPaths that panics on error.
func MustFromPaths(paths ...string) *Tree {
	t, err := FromPaths(paths...)
	if err != nil {
		panic(err)
	}
	return t
}
