// Package normalize runs the fourteen grammar-cleanup passes that turn a
// freshly parsed document into the canonical tree the walker expects:
// merging includes and overwrites, collapsing disjunctions and recursions,
// and pruning dead rules.
package normalize

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fpagnozzi/grammar2code/document"
	"github.com/fpagnozzi/grammar2code/grerr"
)

// Run normalizes doc in place. grammarDir resolves gr:include sources
// relative to the main grammar file's own directory. overwrite is the
// parsed contents of an optional overwrite grammar (nil if none was
// given). log receives the rule removals and recursion simplifications
// that the reporting passes make, and the duplicate-derivation warnings;
// the other passes change the tree without logging.
func Run(doc *document.Document, overwrite *document.Document, grammarDir string, log *logrus.Logger) error {
	if log == nil {
		log = logrus.New()
	}

	if err := mergeIncludes(doc, grammarDir); err != nil {
		return err
	}
	if overwrite != nil {
		if err := applyOverwrite(doc, overwrite); err != nil {
			return err
		}
	}
	if err := appendDisjunctions(doc); err != nil {
		return err
	}
	removeEmptyTextBlocks(doc)
	removeEmptyDerivations(doc, log)
	removeUselessOrs(doc)
	simplifyRecursions(doc, log)
	removeNonChoices(doc)
	mergeDisjunctions(doc)
	removeDuplicates(doc, log)
	removeUnusedRules(doc, log)
	mergeTextBlocks(doc)
	warnDuplicateDerivations(doc, log)
	renameCalls(doc)

	return nil
}

// mergeIncludes replaces every gr:include element directly under the
// derivations list with copies of the included file's own top-level
// derivations. Only includes in the main grammar are honored: an included
// file's own gr:include children, if any, are left untouched — nested
// includes are not expanded recursively.
func mergeIncludes(doc *document.Document, grammarDir string) error {
	for _, c := range doc.Children(doc.Derivations()) {
		cn := doc.Node(c)
		if !cn.IsElement() || (cn.Name != "gr:include" && cn.Name != "include") {
			continue
		}
		src, ok := cn.Attr("source")
		if !ok {
			src, ok = cn.Attr("file")
		}
		if !ok {
			doc.Remove(c)
			continue
		}
		path := filepath.Join(grammarDir, src)
		f, err := os.Open(path)
		if err != nil {
			return grerr.ErrParse.New(err.Error())
		}
		inc, err := document.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		for _, top := range inc.TopLevel() {
			imported := document.Import(doc, inc, top)
			doc.AppendChild(doc.Derivations(), imported)
		}
		doc.Remove(c)
	}
	return nil
}

// applyOverwrite replaces, for every top-level element of the overwrite
// grammar, the same-named derivation in doc. A name with no matching
// derivation is fatal: there is nothing to replace.
func applyOverwrite(doc *document.Document, overwrite *document.Document) error {
	for _, top := range overwrite.TopLevel() {
		name := overwrite.Node(top).Name
		target, ok := doc.Derivation(name)
		if !ok {
			return grerr.ErrOverwriteTarget.New(name)
		}
		imported := document.Import(doc, overwrite, top)
		doc.InsertAfter(target, imported)
		doc.Remove(target)
	}
	return nil
}

// appendDisjunctions splices every append="disjunction" rule's children,
// behind a fresh "or" separator, onto its plain same-named sibling, then
// removes the appender. A name with no plain sibling to extend is fatal.
func appendDisjunctions(doc *document.Document) error {
	for _, top := range doc.TopLevel() {
		n := doc.Node(top)
		if v, ok := n.Attr("append"); !ok || v != "disjunction" {
			continue
		}
		name := n.Name
		target, ok := findAppendTarget(doc, top, name)
		if !ok {
			return grerr.ErrAppendTarget.New(name)
		}
		orNode := doc.NewElement("or")
		doc.AppendChild(target, orNode)
		for _, child := range doc.Children(top) {
			doc.AppendChild(target, doc.Clone(child))
		}
		doc.Remove(top)
	}
	return nil
}

func findAppendTarget(doc *document.Document, appender int, name string) (int, bool) {
	for _, c := range doc.TopLevel() {
		if c == appender {
			continue
		}
		n := doc.Node(c)
		if n.Name != name {
			continue
		}
		if _, hasAppend := n.Attr("append"); hasAppend {
			continue
		}
		return c, true
	}
	return 0, false
}
