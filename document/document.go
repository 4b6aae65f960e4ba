// Package document holds a grammar document as a navigable tree of typed
// nodes. The tree is an arena: nodes are allocated once into a slice and
// referenced by index everywhere else, so that normalization passes can
// insert and remove siblings while other code still holds indices into the
// same tree. Removal tombstones a node rather than compacting the arena;
// only the node's entry in its parent's child list is spliced out.
package document

// Kind distinguishes an element node (name, attributes, children) from a
// text-block node (literal character data, no children of its own).
type Kind int

const (
	KindElement Kind = iota
	KindCData
)

// Node is one entry of the arena. Index 0 is never a valid node reference;
// it is reserved so the zero value of an int index reads as "no node".
type Node struct {
	Kind Kind

	// Name is the element's tag, including the "gr:" prefix for
	// framework elements (gr:grammar, gr:derivations, gr:copy,
	// gr:include). Empty for text-block nodes.
	Name string

	// Attrs holds attribute values; AttrOrder preserves the order
	// attributes were declared in, for stable diagnostic output.
	Attrs     map[string]string
	AttrOrder []string

	// Text is the literal content of a text-block node.
	Text string

	Parent   int
	Children []int

	removed bool
}

func (n *Node) IsElement() bool { return n.Kind == KindElement }
func (n *Node) IsCData() bool  { return n.Kind == KindCData }

// Attr returns an attribute's value and whether it was set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrOr returns an attribute's value, or def if it is unset or empty.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attrs[name]; ok && v != "" {
		return v
	}
	return def
}

// HasAttrs reports whether the node carries any attribute at all.
func (n *Node) HasAttrs() bool {
	return len(n.AttrOrder) > 0
}

// SetAttr sets an attribute, preserving first-seen order.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	if _, ok := n.Attrs[name]; !ok {
		n.AttrOrder = append(n.AttrOrder, name)
	}
	n.Attrs[name] = value
}

// Document is the arena plus the well-known index of the derivations list.
type Document struct {
	nodes       []*Node
	derivations int
}

// New returns an empty document whose root is an (empty) derivations list.
func New() *Document {
	d := &Document{nodes: []*Node{nil}}
	d.derivations = d.newNode(&Node{Kind: KindElement, Name: "gr:derivations", Parent: -1})
	return d
}

func (d *Document) newNode(n *Node) int {
	d.nodes = append(d.nodes, n)
	return len(d.nodes) - 1
}

// NewElement allocates an unattached element node.
func (d *Document) NewElement(name string) int {
	return d.newNode(&Node{Kind: KindElement, Name: name, Parent: -1})
}

// NewCData allocates an unattached text-block node.
func (d *Document) NewCData(text string) int {
	return d.newNode(&Node{Kind: KindCData, Text: text, Parent: -1})
}

// Node dereferences an index. Panics on an out-of-range index, which can
// only happen by passing an index from a different document.
func (d *Document) Node(i int) *Node {
	return d.nodes[i]
}

// Derivations returns the index of the derivations-list node.
func (d *Document) Derivations() int {
	return d.derivations
}

// Removed reports whether a node has been tombstoned.
func (d *Document) Removed(i int) bool {
	return d.nodes[i].removed
}

// Children returns the live (non-removed) child indices of a node, in
// order. The returned slice is a fresh copy, safe to range over while
// mutating the tree.
func (d *Document) Children(i int) []int {
	src := d.nodes[i].Children
	out := make([]int, 0, len(src))
	for _, c := range src {
		if !d.nodes[c].removed {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild attaches child as the last live child of parent.
func (d *Document) AppendChild(parent, child int) {
	d.nodes[parent].Children = append(d.nodes[parent].Children, child)
	d.nodes[child].Parent = parent
	d.nodes[child].removed = false
}

// InsertAfter attaches newNode as ref's immediate next sibling.
func (d *Document) InsertAfter(ref, newNode int) {
	p := d.nodes[ref].Parent
	siblings := d.nodes[p].Children
	for i, c := range siblings {
		if c == ref {
			siblings = append(siblings[:i+1], append([]int{newNode}, siblings[i+1:]...)...)
			d.nodes[p].Children = siblings
			d.nodes[newNode].Parent = p
			d.nodes[newNode].removed = false
			return
		}
	}
	// ref is not (or no longer) a live child: fall back to appending.
	d.AppendChild(p, newNode)
}

// InsertBefore attaches newNode as ref's immediate previous sibling.
func (d *Document) InsertBefore(ref, newNode int) {
	p := d.nodes[ref].Parent
	siblings := d.nodes[p].Children
	for i, c := range siblings {
		if c == ref {
			siblings = append(siblings[:i], append([]int{newNode}, siblings[i:]...)...)
			d.nodes[p].Children = siblings
			d.nodes[newNode].Parent = p
			d.nodes[newNode].removed = false
			return
		}
	}
	d.AppendChild(p, newNode)
}

// Remove tombstones a node and splices it out of its parent's child list.
// Remove is idempotent.
func (d *Document) Remove(i int) {
	n := d.nodes[i]
	if n.removed {
		return
	}
	n.removed = true
	if n.Parent < 0 {
		return
	}
	p := d.nodes[n.Parent]
	for idx, c := range p.Children {
		if c == i {
			p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
			break
		}
	}
}

// ReplaceName renames an element node in place (used by the rename-calls
// pass to disambiguate repeated calls within one alternative).
func (d *Document) ReplaceName(i int, name string) {
	d.nodes[i].Name = name
}

// Clone deep-copies the subtree rooted at i into a fresh, unattached
// subtree and returns the new root's index.
func (d *Document) Clone(i int) int {
	n := d.nodes[i]
	clone := &Node{
		Kind: n.Kind,
		Name: n.Name,
		Text: n.Text,
		Parent: -1,
	}
	if n.Attrs != nil {
		clone.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			clone.Attrs[k] = v
		}
		clone.AttrOrder = append([]string(nil), n.AttrOrder...)
	}
	newIdx := d.newNode(clone)
	for _, c := range d.Children(i) {
		childCopy := d.Clone(c)
		d.AppendChild(newIdx, childCopy)
	}
	return newIdx
}

// Import deep-copies the subtree rooted at srcNode of a different Document
// into dst, returning the new, unattached root index. Used by the
// normalizer to merge included/overwrite grammars, each parsed into its
// own Document, into the main one.
func Import(dst, src *Document, srcNode int) int {
	n := src.Node(srcNode)
	clone := &Node{Kind: n.Kind, Name: n.Name, Text: n.Text, Parent: -1}
	if n.Attrs != nil {
		clone.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			clone.Attrs[k] = v
		}
		clone.AttrOrder = append([]string(nil), n.AttrOrder...)
	}
	newIdx := dst.newNode(clone)
	for _, c := range src.Children(srcNode) {
		childCopy := Import(dst, src, c)
		dst.AppendChild(newIdx, childCopy)
	}
	return newIdx
}
