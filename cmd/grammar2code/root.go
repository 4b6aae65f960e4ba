package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; "dev" otherwise.
var version = "dev"

var log = logrus.New()

var rootFlags = struct {
	overwrite *string
}{}

var rootCmd = &cobra.Command{
	Use:     "grammar2code",
	Short:   "Generate algorithm-configurator parameter files or materialized code from a grammar",
	Version: version,
	Long: `grammar2code walks a grammar document in one of two modes:
- params: enumerate every choice point up to a recursion depth and emit a
  parameter-space file for an algorithm configurator.
- code: given a parameter assignment, walk the grammar and emit literal
  text to the files its derivations name as output.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	log.SetLevel(logrus.InfoLevel)
	rootFlags.overwrite = rootCmd.PersistentFlags().String("overwrite", "", "overwrite grammar document path")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
