package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a document parse failure with position information,
// when the underlying decoder can compute one.
type ParseError struct {
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("document: parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("document: parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a grammar document from r and returns its arena tree. The
// returned Document's Derivations() root is the gr:derivations element
// found directly under the outermost element; if none is found the
// document itself is treated as the derivations list.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	d := &Document{nodes: []*Node{nil}}
	var stack []int
	var root int

	// prefixes maps a declared namespace URL back to its prefix ("" for a
	// default namespace), so names keep their "gr:" form after the decoder
	// has resolved the prefix to its URL.
	prefixes := map[string]string{}
	elemName := func(name xml.Name) string {
		if name.Space == "" {
			return name.Local
		}
		if p, ok := prefixes[name.Space]; ok {
			if p == "" {
				return name.Local
			}
			return p + ":" + name.Local
		}
		return name.Space + ":" + name.Local
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if se, ok := err.(*xml.SyntaxError); ok {
				return nil, &ParseError{Line: se.Line, Err: err}
			}
			return nil, &ParseError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					prefixes[a.Value] = a.Name.Local
				} else if a.Name.Space == "" && a.Name.Local == "xmlns" {
					prefixes[a.Value] = ""
				}
			}
			n := &Node{Kind: KindElement, Name: elemName(t.Name), Parent: -1}
			for _, a := range t.Attr {
				n.SetAttr(elemName(a.Name), a.Value)
			}
			idx := d.newNode(n)
			if len(stack) > 0 {
				d.AppendChild(stack[len(stack)-1], idx)
			} else {
				root = idx
			}
			stack = append(stack, idx)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := string(t)
			// A lone space is kept verbatim: it is the placeholder the
			// recursion simplifier writes in place of a collapsed
			// self-reference, and must round-trip through re-parsing.
			if text != " " && strings.TrimSpace(text) == "" {
				continue
			}
			if len(stack) == 0 {
				continue
			}
			idx := d.NewCData(text)
			d.AppendChild(stack[len(stack)-1], idx)
		}
	}

	if root == 0 {
		return nil, &ParseError{Err: fmt.Errorf("document: empty grammar document")}
	}

	d.derivations = findDerivations(d, root)
	return d, nil
}

// findDerivations returns the derivations list: root itself if it is named
// gr:derivations (or bare derivations), otherwise the first direct child of
// root with one of those names, and root when neither is found.
func findDerivations(d *Document, root int) int {
	rn := d.Node(root)
	if rn.Name == "gr:derivations" || rn.Name == "derivations" {
		return root
	}
	for _, c := range d.Children(root) {
		cn := d.Node(c)
		if cn.IsElement() && (cn.Name == "gr:derivations" || cn.Name == "derivations") {
			return c
		}
	}
	return root
}
