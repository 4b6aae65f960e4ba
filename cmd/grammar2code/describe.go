package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fpagnozzi/grammar2code/document"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar-file>",
		Short:   "Print the cleaned-up (post-normalization) grammar tree",
		Example: `  grammar2code describe grammar.xml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	doc, _, err := loadGrammar(args[0], *rootFlags.overwrite)
	if err != nil {
		return err
	}
	for _, top := range doc.TopLevel() {
		printNode(os.Stdout, doc, top, 0)
	}
	return nil
}

func printNode(w *os.File, doc *document.Document, i, depth int) {
	n := doc.Node(i)
	indent := strings.Repeat("  ", depth)
	if n.IsCData() {
		fmt.Fprintf(w, "%s%q\n", indent, n.Text)
		return
	}
	attrs := ""
	for _, k := range n.AttrOrder {
		attrs += fmt.Sprintf(" %s=%q", k, n.Attrs[k])
	}
	fmt.Fprintf(w, "%s<%s%s>\n", indent, n.Name, attrs)
	for _, c := range doc.Children(i) {
		printNode(w, doc, c, depth+1)
	}
}
