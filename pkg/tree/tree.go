package tree

import (
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/types"
)

const noParent = -1

type entry struct {
	node     Node
	parent   int
	children []int
}

// Tree is an arena of nodes. The zero value is an empty tree.
type Tree struct {
	entries []entry
	index   map[NodeID]int
	roots   []int
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Has reports whether id is in the tree.
func (t *Tree) Has(id NodeID) bool {
	_, ok := t.lookup(id)
	return ok
}

func (t *Tree) lookup(id NodeID) (int, bool) {
	if t == nil || t.index == nil {
		return 0, false
	}
	i, ok := t.index[id]
	return i, ok
}

// Get returns a copy of the node.
func (t *Tree) Get(id NodeID) (Node, bool) {
	i, ok := t.lookup(id)
	if !ok {
		return Node{}, false
	}
	return t.entries[i].node.clone(), true
}

// Roots returns the top-level node ids in order.
func (t *Tree) Roots() []NodeID {
	if t == nil {
		return nil
	}
	return t.ids(t.roots)
}

// Parent returns the parent id; roots have none.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	i, ok := t.lookup(id)
	if !ok || t.entries[i].parent == noParent {
		return "", false
	}
	return t.entries[t.entries[i].parent].node.ID, true
}

// Children returns the child ids of a directory in order.
func (t *Tree) Children(id NodeID) []NodeID {
	i, ok := t.lookup(id)
	if !ok {
		return nil
	}
	return t.ids(t.entries[i].children)
}

func (t *Tree) ids(idx []int) []NodeID {
	out := make([]NodeID, len(idx))
	for k, i := range idx {
		out[k] = t.entries[i].node.ID
	}
	return out
}

// Walk visits every node depth-first in tree order. Returning false from fn
// skips the node's descendants.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if t == nil {
		return
	}
	for _, r := range t.roots {
		t.walk(r, 0, fn)
	}
}

// WalkFrom is Walk restricted to the subtree rooted at id.
func (t *Tree) WalkFrom(id NodeID, fn func(n Node, depth int) bool) {
	if i, ok := t.lookup(id); ok {
		t.walk(i, 0, fn)
	}
}

func (t *Tree) walk(i, depth int, fn func(Node, int) bool) {
	e := &t.entries[i]
	if !fn(e.node.clone(), depth) {
		return
	}
	for _, c := range e.children {
		t.walk(c, depth+1, fn)
	}
}

// Files returns every file node in tree order.
func (t *Tree) Files() []Node {
	var out []Node
	t.Walk(func(n Node, _ int) bool {
		if n.IsFile() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// DescendantFiles returns the ids of every file below id, at any depth.
func (t *Tree) DescendantFiles(id NodeID) []NodeID {
	var out []NodeID
	t.WalkFrom(id, func(n Node, depth int) bool {
		if depth > 0 && n.IsFile() {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

// SelectedIDs returns the set of selected file ids.
func (t *Tree) SelectedIDs() map[NodeID]bool {
	set := make(map[NodeID]bool)
	for _, e := range t.entriesOrNil() {
		if e.node.IsFile() && e.node.Selected {
			set[e.node.ID] = true
		}
	}
	return set
}

// SelectedFiles returns the selected files in tree order.
func (t *Tree) SelectedFiles() []Node {
	var out []Node
	for _, n := range t.Files() {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}

func (t *Tree) entriesOrNil() []entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Clone returns a deep copy. The copy shares no mutable state with t.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return &Tree{}
	}
	out := &Tree{
		entries: make([]entry, len(t.entries)),
		index:   make(map[NodeID]int, len(t.index)),
		roots:   append([]int(nil), t.roots...),
	}
	for i, e := range t.entries {
		out.entries[i] = entry{
			node:     e.node.clone(),
			parent:   e.parent,
			children: append([]int(nil), e.children...),
		}
	}
	for id, i := range t.index {
		out.index[id] = i
	}
	return out
}

// Filter returns a new tree holding the nodes for which keep returns true.
// A node whose parent is dropped is dropped too. IDs and order are preserved.
func (t *Tree) Filter(keep func(n Node) bool) *Tree {
	out := &Tree{index: make(map[NodeID]int)}
	if t == nil {
		return out
	}
	var copyNode func(i, parent int)
	copyNode = func(i, parent int) {
		e := t.entries[i]
		if !keep(e.node) {
			return
		}
		ni := out.add(e.node.clone(), parent)
		for _, c := range e.children {
			copyNode(c, ni)
		}
	}
	for _, r := range t.roots {
		copyNode(r, noParent)
	}
	return out
}

func (t *Tree) add(n Node, parent int) int {
	if t.index == nil {
		t.index = make(map[NodeID]int)
	}
	i := len(t.entries)
	t.entries = append(t.entries, entry{node: n, parent: parent})
	t.index[n.ID] = i
	if parent == noParent {
		t.roots = append(t.roots, i)
	} else {
		t.entries[parent].children = append(t.entries[parent].children, i)
	}
	return i
}

// file returns the entry for a file id or a coded error.
func (t *Tree) file(id NodeID) (*entry, error) {
	i, ok := t.lookup(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "node %q not found", id)
	}
	e := &t.entries[i]
	if e.node.Kind != types.NodeFile {
		return nil, errors.Newf(errors.ErrInvalidInput, "node %q is not a file", id)
	}
	return e, nil
}

// SetSelected sets the selection flag of a file.
func (t *Tree) SetSelected(id NodeID, selected bool) error {
	e, err := t.file(id)
	if err != nil {
		return err
	}
	e.node.Selected = selected
	return nil
}

// SetContent replaces a file's content.
func (t *Tree) SetContent(id NodeID, c Content) error {
	e, err := t.file(id)
	if err != nil {
		return err
	}
	e.node.Content = c
	return nil
}

// SetDescription sets or clears (empty string) a file's description override.
func (t *Tree) SetDescription(id NodeID, desc string) error {
	e, err := t.file(id)
	if err != nil {
		return err
	}
	e.node.DescriptionOverride = desc
	return nil
}

// SetLineLimitOverride sets or clears (nil) a file's line-limit override.
func (t *Tree) SetLineLimitOverride(id NodeID, ll *types.LineLimit) error {
	e, err := t.file(id)
	if err != nil {
		return err
	}
	if ll != nil {
		cp := *ll
		ll = &cp
	}
	e.node.LineLimitOverride = ll
	return nil
}

// SetCompressionOverride sets or clears (nil) a file's compression override.
func (t *Tree) SetCompressionOverride(id NodeID, cf *types.CompressionFlags) error {
	e, err := t.file(id)
	if err != nil {
		return err
	}
	if cf != nil {
		cp := *cf
		cf = &cp
	}
	e.node.CompressionOverride = cf
	return nil
}

// ApplySelection sets every file's flag from membership in set.
func (t *Tree) ApplySelection(set map[NodeID]bool) {
	for i := range t.entriesOrNil() {
		e := &t.entries[i]
		if e.node.IsFile() {
			e.node.Selected = set[e.node.ID]
		}
	}
}
