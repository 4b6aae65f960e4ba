// Package walk implements the depth-first traversal core shared by both
// generation modes: enumerating every choice point for the parameter
// emitter, and following one concrete assignment for the code emitter.
package walk

import (
	"strconv"
	"strings"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/grerr"
)

// Visitor receives one callback per node kind the walker classifies a node
// as. Categorical and Recursive return the chosen alternative index, or -1
// to visit every alternative (parameter mode always returns -1; code mode
// returns the assignment's choice to prune the walk).
type Visitor interface {
	Call(doc *document.Document, node int, path string, depth int) error
	Categorical(doc *document.Document, node int, path string, depth int) (int, error)
	Recursive(doc *document.Document, node int, path string, depth int) (int, error)
	Range(doc *document.Document, node int, path string, depth int) error
	Copy(doc *document.Document, node int, path string, depth int) error
	CData(doc *document.Document, node int, path string, depth int) error
	Plain(doc *document.Document, node int, path string, depth int) error
}

// Walker drives a Visitor depth-first from every top-level derivation
// carrying an output attribute.
type Walker struct {
	Doc      *document.Document
	MaxDepth int
	Visitor  Visitor
}

// Walk starts a traversal from every output-bearing top-level derivation.
func (w *Walker) Walk() error {
	for _, top := range w.Doc.TopLevel() {
		if _, ok := w.Doc.Node(top).Attr("output"); ok {
			if err := w.doWalk(top, "", 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// WalkFrom starts a traversal from a single node, for tests that need to
// exercise a subtree without a surrounding output-bearing derivation.
func (w *Walker) WalkFrom(node int) error {
	return w.doWalk(node, "", 0)
}

func (w *Walker) doWalk(node int, parent string, depth int) error {
	n := w.Doc.Node(node)
	switch w.Doc.Classify(node) {
	case document.ClassCall:
		if err := w.Visitor.Call(w.Doc, node, parent, depth); err != nil {
			return err
		}
		name := n.Name
		path := parent + "%" + name
		target, ok := w.Doc.Derivation(name)
		if !ok {
			return grerr.ErrMissingDerivation.New(name)
		}
		return w.doWalk(target, path, depth)

	case document.ClassCategorical:
		if parent == "" {
			parent = n.Name
		}
		choice, err := w.Visitor.Categorical(w.Doc, node, parent, depth)
		if err != nil {
			return err
		}
		for count, group := range getChoice(w.Doc, node) {
			if choice != -1 && choice != count {
				continue
			}
			for _, child := range group {
				path := parent + "%" + strconv.Itoa(count)
				if err := w.doWalk(child, path, depth); err != nil {
					return err
				}
			}
		}

	case document.ClassRecursive:
		if parent == "" {
			parent = n.Name
		}
		choice, err := w.Visitor.Recursive(w.Doc, node, parent+"@"+strconv.Itoa(depth), depth)
		if err != nil {
			return err
		}
		for count, group := range getChoice(w.Doc, node) {
			if choice != -1 && choice != count {
				continue
			}
			recursive := false
			for _, child := range group {
				if w.Doc.Node(child).Name == n.Name {
					recursive = true
				}
			}
			if recursive {
				if depth+1 >= w.MaxDepth {
					continue
				}
				for _, child := range group {
					var path string
					if w.Doc.Node(child).Name == n.Name {
						path = eraseLast(parent, "%"+n.Name)
					} else {
						path = parent + "@" + strconv.Itoa(depth) + "%" + strconv.Itoa(count)
					}
					if err := w.doWalk(child, path, depth+1); err != nil {
						return err
					}
				}
			} else {
				for _, child := range group {
					path := parent + "@" + strconv.Itoa(depth) + "%" + strconv.Itoa(count)
					if err := w.doWalk(child, path, depth+1); err != nil {
						return err
					}
				}
			}
		}

	case document.ClassRange:
		return w.Visitor.Range(w.Doc, node, parent, depth)

	case document.ClassCopy:
		return w.Visitor.Copy(w.Doc, node, parent, depth)

	case document.ClassCData:
		return w.Visitor.CData(w.Doc, node, parent, depth)

	case document.ClassPlain:
		if err := w.Visitor.Plain(w.Doc, node, parent, depth); err != nil {
			return err
		}
		for _, child := range w.Doc.Children(node) {
			if w.Doc.Node(child).Name == "or" {
				continue
			}
			var path string
			if parent != "" {
				path = parent + "%"
			} else {
				path = n.Name
			}
			if err := w.doWalk(child, path, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// getChoice splits a container's live children into alternatives, each a
// maximal run of siblings between "or" separators.
func getChoice(doc *document.Document, node int) [][]int {
	groups := [][]int{{}}
	for _, c := range doc.Children(node) {
		if doc.Node(c).Name == "or" {
			groups = append(groups, []int{})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], c)
	}
	return groups
}

// eraseLast removes the last occurrence of substr from s. When descending
// into a recursive alternative, the path's trailing "%name" segment (added
// by the call that reached this node) is dropped so that every depth of
// the recursion shares one canonical parameter identity, distinguished
// only by the "@depth" suffix.
func eraseLast(s, substr string) string {
	idx := strings.LastIndex(s, substr)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(substr):]
}
