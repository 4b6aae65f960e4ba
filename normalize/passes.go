package normalize

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/fpagnozzi/grammar2code/document"
)

// collectEmptyCalls returns every element anywhere under root named name
// that is itself childless and attribute-less — a "call" reference to that
// rule, as opposed to the rule's own definition (which normally carries
// children). Shared by every pass below that needs to find or rewrite call
// sites of a rule.
func collectEmptyCalls(doc *document.Document, root int, name string) []int {
	var out []int
	var walk func(n int)
	walk = func(n int) {
		for _, c := range doc.Children(n) {
			cn := doc.Node(c)
			if cn.IsElement() && cn.Name == name && !cn.HasAttrs() && len(doc.Children(c)) == 0 {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// removeEmptyTextBlocks drops any live text-block node whose content is
// empty, or whitespace that is not the single-space recursion placeholder.
// Parse already rejects most whitespace-only character data; this pass is
// the safety net for text introduced by include/overwrite merges.
func removeEmptyTextBlocks(doc *document.Document) {
	var walk func(n int)
	walk = func(n int) {
		for _, c := range doc.Children(n) {
			cn := doc.Node(c)
			if cn.IsCData() && isBlankText(cn.Text) {
				doc.Remove(c)
				continue
			}
			walk(c)
		}
	}
	walk(doc.Derivations())
}

func isBlankText(s string) bool {
	if s == " " {
		return false
	}
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// removeEmptyDerivations finds every top-level derivation with no
// children, attributes, or text, and removes every occurrence of its name
// anywhere under the derivations list — both the empty definition itself
// and any call site that referenced it.
func removeEmptyDerivations(doc *document.Document, log *logrus.Logger) {
	var empty []string
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if len(doc.Children(top)) == 0 && !n.HasAttrs() {
			empty = append(empty, n.Name)
		}
	}
	for _, name := range empty {
		log.Infof("removing all occurrences of empty rule %s", name)
		var targets []int
		var walk func(n int)
		walk = func(n int) {
			for _, c := range doc.Children(n) {
				if doc.Node(c).IsElement() && doc.Node(c).Name == name {
					targets = append(targets, c)
				}
				walk(c)
			}
		}
		walk(doc.Derivations())
		for _, t := range targets {
			doc.Remove(t)
		}
	}
}

// removeUselessOrs drops every "or" separator that is leading, trailing,
// or immediately follows another "or", in every container in the tree
// that has at least one "or" child.
func removeUselessOrs(doc *document.Document) {
	var walk func(n int)
	walk = func(n int) {
		children := doc.Children(n)
		hasOr := false
		for _, c := range children {
			if doc.Node(c).Name == "or" {
				hasOr = true
				break
			}
		}
		if hasOr {
			wasOr := true
			for i, c := range children {
				if doc.Node(c).Name == "or" {
					isLast := i == len(children)-1
					if wasOr || isLast {
						doc.Remove(c)
					}
					wasOr = true
				} else {
					wasOr = false
				}
			}
			// A run of ors at the end keeps its first member above;
			// drop whatever or is still last.
			live := doc.Children(n)
			for len(live) > 0 && doc.Node(live[len(live)-1]).Name == "or" {
				doc.Remove(live[len(live)-1])
				live = live[:len(live)-1]
			}
		}
		for _, c := range doc.Children(n) {
			walk(c)
		}
	}
	walk(doc.Derivations())
}

// simplifyRecursions collapses a rule of the shape "base-case or
// recursive-case" (or its mirror image) into a single non-recursive
// definition, rewriting every call site to inline the base case directly.
// A derivation's shape must match one of these splits exactly: a single
// leaf on one side of the "or" and that same leaf alongside the recursive
// call on the other (either side may hold the lone leaf), or the bare
// recursive call on the left with a single leaf on the right; anything
// else leaves the rule untouched. A shape mismatch skips only the
// offending rule; it never aborts the pass for the rules after it.
func simplifyRecursions(doc *document.Document, log *logrus.Logger) {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if _, ok := n.Attr("output"); ok {
			continue
		}
		if _, ok := n.Attr("destination"); ok {
			continue
		}
		if _, ok := n.Attr("destination_dir"); ok {
			continue
		}
		name := n.Name
		children := doc.Children(top)

		recursive := false
		numOrs := 0
		for _, c := range children {
			cn := doc.Node(c)
			if cn.Name == "or" {
				numOrs++
			}
			if cn.IsElement() && cn.Name == name {
				recursive = true
			}
		}
		if !recursive || numOrs != 1 {
			continue
		}

		var left, right []int
		var orSep int
		cur := &left
		for _, c := range children {
			if doc.Node(c).Name == "or" {
				orSep = c
				cur = &right
				continue
			}
			*cur = append(*cur, c)
		}

		var stop, cont []int
		switch {
		case len(left) == 1 && len(right) == 2:
			stop, cont = left, right
		case len(left) == 2 && len(right) == 1:
			stop, cont = right, left
		case len(left) == 1 && len(right) == 1:
			stop, cont = right, left
		default:
			continue
		}

		stopNode := doc.Node(stop[0])
		if stopNode.IsElement() {
			if len(doc.Children(stop[0])) > 0 || stopNode.Name == name {
				continue
			}
		}

		// cont always contains the recursive self-call, recSite. When it
		// holds a second element alongside that call, that element
		// (toCheck) must match stop's leaf exactly, or the shape is not
		// the simple pattern this pass knows how to collapse. When cont
		// is the bare self-call alone, there is nothing else to verify.
		var recSite int
		toCheck := -1
		switch len(cont) {
		case 1:
			if doc.Node(cont[0]).Name != name {
				continue
			}
			recSite = cont[0]
		case 2:
			switch {
			case doc.Node(cont[0]).Name == name:
				recSite, toCheck = cont[0], cont[1]
			case doc.Node(cont[1]).Name == name:
				recSite, toCheck = cont[1], cont[0]
			default:
				continue
			}
		default:
			continue
		}
		if toCheck >= 0 {
			tcNode := doc.Node(toCheck)
			if tcNode.Kind != stopNode.Kind {
				continue
			}
			if tcNode.IsElement() {
				if len(doc.Children(toCheck)) > 0 || tcNode.Name != stopNode.Name {
					continue
				}
			} else if tcNode.Text != stopNode.Text {
				continue
			}
		}

		// Every other childless, attribute-less reference to this rule
		// is a genuine call site and gets the base case spliced in
		// before it; recSite is the recursive reference inside the
		// rule's own body and is left alone here (it is dropped below,
		// along with the rest of the "or" alternative).
		sites := collectEmptyCalls(doc, doc.Derivations(), name)
		for _, site := range sites {
			if site == recSite {
				continue
			}
			doc.InsertBefore(site, cloneLeaf(doc, stopNode))
		}

		placeholder := doc.NewCData(" ")
		doc.InsertAfter(stop[0], placeholder)
		doc.Remove(stop[0])
		doc.Remove(orSep)
		for _, c := range cont {
			doc.Remove(c)
		}

		log.Infof("simplified recursive rule %s", name)
	}
}

func cloneLeaf(doc *document.Document, n *document.Node) int {
	if n.IsElement() {
		return doc.NewElement(n.Name)
	}
	return doc.NewCData(n.Text)
}

// removeNonChoices inlines every rule with no "or" children and no
// attributes at each of its call sites, then deletes the rule itself —
// these are rules with nothing to choose between, so the call adds
// nothing the inlined body doesn't already say.
func removeNonChoices(doc *document.Document) {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if n.HasAttrs() {
			continue
		}
		hasOr := false
		for _, c := range doc.Children(top) {
			if doc.Node(c).Name == "or" {
				hasOr = true
				break
			}
		}
		if hasOr {
			continue
		}
		inlineAt(doc, collectEmptyCalls(doc, doc.Derivations(), n.Name), top)
		doc.Remove(top)
	}
}

func inlineAt(doc *document.Document, sites []int, def int) {
	for _, site := range sites {
		last := site
		for _, child := range doc.Children(def) {
			clone := doc.Clone(child)
			doc.InsertAfter(last, clone)
			last = clone
		}
		doc.Remove(site)
	}
}

// mergeDisjunctions inlines a non-recursive, attribute-less rule at every
// call site whose immediate neighbors are each either absent or another
// "or" separator — i.e. every call site that is itself already one whole
// alternative of its enclosing choice. A call site with a non-"or"
// neighbor is left alone, and in that case the rule's own definition
// survives (it is still needed there).
func mergeDisjunctions(doc *document.Document) {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if n.HasAttrs() {
			continue
		}
		name := n.Name
		recursive := false
		for _, c := range doc.Children(top) {
			if doc.Node(c).Name == name {
				recursive = true
				break
			}
		}
		if recursive {
			continue
		}

		sites := collectEmptyCalls(doc, doc.Derivations(), name)
		substitutionDone := false
		doNotDelete := false
		for _, site := range sites {
			if !neighborsAreOrOrAbsent(doc, site) {
				doNotDelete = true
				continue
			}
			last := site
			for _, child := range doc.Children(top) {
				clone := doc.Clone(child)
				doc.InsertAfter(last, clone)
				last = clone
			}
			doc.Remove(site)
			substitutionDone = true
		}
		if substitutionDone && !doNotDelete {
			doc.Remove(top)
		}
	}
}

func neighborsAreOrOrAbsent(doc *document.Document, node int) bool {
	p := doc.Node(node).Parent
	siblings := doc.Children(p)
	idx := -1
	for i, s := range siblings {
		if s == node {
			idx = i
			break
		}
	}
	if idx == -1 {
		return true
	}
	if idx > 0 && doc.Node(siblings[idx-1]).Name != "or" {
		return false
	}
	if idx < len(siblings)-1 && doc.Node(siblings[idx+1]).Name != "or" {
		return false
	}
	return true
}

// removeDuplicates drops the later of any two same-named top-level
// derivations whose attribute sets differ, keeping the first. Same-named
// derivations with identical attributes are left for the grammar author
// to resolve; this pass only protects against an append/overwrite leaving
// two materially different definitions of the same name behind.
func removeDuplicates(doc *document.Document, log *logrus.Logger) {
	tops := doc.TopLevel()
	removed := map[int]bool{}
	for i := 0; i < len(tops); i++ {
		if removed[tops[i]] {
			continue
		}
		ni := doc.Node(tops[i])
		for j := i + 1; j < len(tops); j++ {
			if removed[tops[j]] {
				continue
			}
			nj := doc.Node(tops[j])
			if ni.Name != nj.Name {
				continue
			}
			if !attrsEqual(ni, nj) {
				log.Infof("removing duplicate rule %s", nj.Name)
				doc.Remove(tops[j])
				removed[tops[j]] = true
			}
		}
	}
}

func attrsEqual(a, b *document.Node) bool {
	if len(a.Attrs) != len(b.Attrs) {
		return false
	}
	for k, v := range a.Attrs {
		if bv, ok := b.Attrs[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// removeUnusedRules deletes every rule that is not an output/destination
// anchor and has no remaining call site, after every earlier inlining pass
// has had a chance to consume its call sites.
func removeUnusedRules(doc *document.Document, log *logrus.Logger) {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if _, ok := n.Attr("output"); ok {
			continue
		}
		if _, ok := n.Attr("destination"); ok {
			continue
		}
		if _, ok := n.Attr("destination_dir"); ok {
			continue
		}
		sites := collectEmptyCalls(doc, doc.Derivations(), n.Name)
		used := false
		for _, s := range sites {
			if s != top {
				used = true
				break
			}
		}
		if !used {
			log.Infof("removing unused rule %s", n.Name)
			doc.Remove(top)
		}
	}
}

// mergeTextBlocks concatenates every run of adjacent text-block children
// in every container into a single node.
func mergeTextBlocks(doc *document.Document) {
	var walk func(n int)
	walk = func(n int) {
		children := doc.Children(n)
		i := 0
		for i < len(children) {
			c := children[i]
			if doc.Node(c).IsCData() {
				j := i + 1
				text := doc.Node(c).Text
				for j < len(children) && doc.Node(children[j]).IsCData() {
					text += doc.Node(children[j]).Text
					doc.Remove(children[j])
					j++
				}
				doc.Node(c).Text = text
				i = j
			} else {
				i++
			}
		}
		for _, c := range doc.Children(n) {
			walk(c)
		}
	}
	walk(doc.Derivations())
}

// warnDuplicateDerivations logs a warning for every pair of distinct-named
// top-level rules whose immediate children are the same multiset of call
// names and text values — a grammar-authoring smell, not an error.
func warnDuplicateDerivations(doc *document.Document, log *logrus.Logger) {
	tops := doc.TopLevel()
	for i := 0; i < len(tops); i++ {
		for j := i + 1; j < len(tops); j++ {
			a, b := doc.Node(tops[i]), doc.Node(tops[j])
			if a.Name == b.Name {
				continue
			}
			ca, cb := doc.Children(tops[i]), doc.Children(tops[j])
			if len(ca) == 0 || len(cb) == 0 || len(ca) != len(cb) {
				continue
			}
			sigA, sigB := childSignature(doc, ca), childSignature(doc, cb)
			sort.Strings(sigA)
			sort.Strings(sigB)
			equal := true
			for k := range sigA {
				if sigA[k] != sigB[k] {
					equal = false
					break
				}
			}
			if equal {
				log.Warnf("%s could be a duplicate of %s", a.Name, b.Name)
			}
		}
	}
}

func childSignature(doc *document.Document, children []int) []string {
	out := make([]string, len(children))
	for i, c := range children {
		n := doc.Node(c)
		if n.IsElement() {
			out[i] = n.Name
		} else {
			out[i] = n.Text
		}
	}
	return out
}

// renameCalls disambiguates repeated calls to the same rule within one
// alternative (a run of siblings not crossing an "or") by appending an
// index to every occurrence after the first, duplicating the called
// rule's own definition under the new name if one doesn't already exist.
// This is what lets the parameter emitter give each repeated call its own
// independent choice point instead of colliding on one shared name.
func renameCalls(doc *document.Document) {
	for _, top := range doc.TopLevel() {
		for _, block := range splitByOr(doc, top) {
			renameCallsInsideBlock(doc, block)
		}
	}
}

// splitByOr partitions a rule's direct children into the runs separated
// by "or" siblings, keeping only childless elements (calls) in each run —
// an element with children is a choice's own literal content, not a call,
// and does not participate in renaming.
func splitByOr(doc *document.Document, top int) [][]int {
	var blocks [][]int
	var current []int
	for _, c := range doc.Children(top) {
		cn := doc.Node(c)
		if !cn.IsElement() {
			continue
		}
		if cn.Name == "or" {
			blocks = append(blocks, current)
			current = nil
			continue
		}
		if len(doc.Children(c)) == 0 {
			current = append(current, c)
		}
	}
	blocks = append(blocks, current)
	return blocks
}

func renameCallsInsideBlock(doc *document.Document, block []int) {
	if len(block) <= 1 {
		return
	}
	counts := map[string]int{}
	for _, el := range block {
		name := doc.Node(el).Name
		curr, seen := counts[name]
		if !seen {
			counts[name] = 1
			continue
		}
		counts[name] = curr + 1
		newName := fmt.Sprintf("%s%d", name, counts[name])
		doc.ReplaceName(el, newName)

		if _, exists := doc.Derivation(newName); exists {
			continue
		}
		toDuplicate := name
		if curr != 1 {
			toDuplicate = fmt.Sprintf("%s%d", name, curr)
		}
		if target, ok := doc.Derivation(toDuplicate); ok {
			clone := doc.Clone(target)
			doc.InsertAfter(target, clone)
			doc.ReplaceName(clone, newName)
		}
	}
}
