package document

// Derivation looks up a top-level rule by name under the derivations list.
// Returns (0, false) if no live derivation has that name.
func (d *Document) Derivation(name string) (int, bool) {
	for _, c := range d.Children(d.derivations) {
		if d.Node(c).Name == name {
			return c, true
		}
	}
	return 0, false
}

// TopLevel returns every live top-level derivation index, in document order.
func (d *Document) TopLevel() []int {
	return d.Children(d.derivations)
}

// Kind classification of a node, computed on demand rather than stored:
// the tree only mutates during normalization, so recomputing is cheap and
// avoids a second source of truth.
type NodeClass int

const (
	ClassPlain NodeClass = iota
	ClassCall
	ClassOr
	ClassRange
	ClassCopy
	ClassCData
	ClassCategorical
	ClassRecursive
)

// Classify computes a node's walker-visible kind. Container nodes
// (categorical/recursive/plain) are distinguished from each other only by
// inspecting their live children, so classification is always relative to
// the current tree state.
func (d *Document) Classify(i int) NodeClass {
	n := d.Node(i)
	if n.IsCData() {
		return ClassCData
	}
	if n.Name == "or" {
		return ClassOr
	}
	if isCopy(n) {
		return ClassCopy
	}
	if isRange(n) {
		return ClassRange
	}
	children := d.Children(i)
	if len(children) == 0 && !n.HasAttrs() {
		return ClassCall
	}
	for _, c := range children {
		if d.Node(c).Name == n.Name {
			return ClassRecursive
		}
	}
	for _, c := range children {
		if d.Node(c).Name == "or" {
			return ClassCategorical
		}
	}
	return ClassPlain
}

func isCopy(n *Node) bool {
	if n.Name == "gr:copy" || n.Name == "copy" {
		return true
	}
	_, hasSrc := n.Attr("source")
	_, hasSrcDir := n.Attr("source_dir")
	return hasSrc || hasSrcDir
}

func isRange(n *Node) bool {
	t, ok := n.Attr("type")
	return ok && (t == "int" || t == "real")
}
