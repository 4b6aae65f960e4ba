package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fpagnozzi/grammar2code/grerr"
	"github.com/fpagnozzi/grammar2code/param"
	"github.com/fpagnozzi/grammar2code/param/crace"
	"github.com/fpagnozzi/grammar2code/param/emili"
	"github.com/fpagnozzi/grammar2code/param/irace"
	"github.com/fpagnozzi/grammar2code/param/paramils"
	"github.com/fpagnozzi/grammar2code/param/smac"
)

var paramsFlags = struct {
	depth  *int
	format *string
	out    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "params <grammar-file>",
		Short:   "Enumerate the grammar's choice points into a configurator parameter file",
		Example: `  grammar2code params grammar.xml -d 3 -f irace -p params.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParams,
	}
	paramsFlags.depth = cmd.Flags().IntP("depth", "d", 3, "maximum recursion depth")
	paramsFlags.format = cmd.Flags().StringP("format", "f", "irace", "dialect: irace|paramils|smac|crace|emili")
	paramsFlags.out = cmd.Flags().StringP("out", "p", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func dialectFor(name string) (param.Dialect, error) {
	switch name {
	case "irace":
		return irace.Dialect{}, nil
	case "paramils":
		return paramils.Dialect{}, nil
	case "smac":
		return smac.Dialect{}, nil
	case "crace":
		return crace.Dialect{}, nil
	case "emili":
		return emili.Dialect{}, nil
	default:
		return nil, grerr.ErrUnknownDialect.New(name)
	}
}

func runParams(cmd *cobra.Command, args []string) error {
	doc, _, err := loadGrammar(args[0], *rootFlags.overwrite)
	if err != nil {
		return err
	}

	dialect, err := dialectFor(*paramsFlags.format)
	if err != nil {
		return err
	}

	out, err := param.Print(doc, dialect, *paramsFlags.depth, log)
	if err != nil {
		return err
	}

	if *paramsFlags.out == "" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	return os.WriteFile(*paramsFlags.out, []byte(out), 0o644)
}
