package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fpagnozzi/grammar2code/codegen"
	"github.com/fpagnozzi/grammar2code/grerr"
)

var codeFlags = struct {
	targetDir     *string
	doNotReindent *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "code <grammar-file> [-- --name=value ...]",
		Short: "Materialize code by walking the grammar under a parameter assignment",
		Long: `Parameter assignments follow a "--" separator. Without it, each
--name=value token is parsed as a flag of this command and rejected as
an unknown flag.`,
		Example: `  grammar2code code grammar.xml -t ./out -- --choice=0 --mode-sub=1`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCode,
	}
	codeFlags.targetDir = cmd.Flags().StringP("target-dir", "t", ".", "output directory")
	codeFlags.doNotReindent = cmd.Flags().BoolP("no-reindent", "x", false, "suppress the re-indentation step")
	rootCmd.AddCommand(cmd)
}

func runCode(cmd *cobra.Command, args []string) error {
	doc, grammarDir, err := loadGrammar(args[0], *rootFlags.overwrite)
	if err != nil {
		return err
	}

	params, err := parseParameterArgs(args[1:])
	if err != nil {
		return err
	}

	return codegen.Generate(doc, grammarDir, *codeFlags.targetDir, params, *codeFlags.doNotReindent, log)
}

// parseParameterArgs turns a list of "--name=value" tokens into an
// assignment map. Any token without an "=" or a leading "--" is a fatal
// malformed-parameter error.
func parseParameterArgs(tokens []string) (map[string]string, error) {
	params := map[string]string{}
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, "--") {
			return nil, grerr.ErrBadParameterToken.New(tok)
		}
		body := strings.TrimPrefix(tok, "--")
		idx := strings.IndexByte(body, '=')
		if idx < 0 {
			return nil, grerr.ErrBadParameterToken.New(tok)
		}
		params[body[:idx]] = body[idx+1:]
	}
	return params, nil
}
