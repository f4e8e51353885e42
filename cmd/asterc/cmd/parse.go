package cmd

import (
	"fmt"
	"os"

	"github.com/asterlang/aster/internal/diag"
	"github.com/asterlang/aster/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one source file and report syntax diagnostics only",
	Long: `parse runs internal/parser (C3) alone, without the resolver: it checks
that a file's grammar is well-formed and reports the first syntax error, if
any, without attempting semantic resolution.`,
	Args: cobra.ExactArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParseCmd(_ *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fail("reading %q: %w", args[0], err)
	}
	_, failure := parser.Parse(args[0], string(text))
	if failure != nil {
		printFailure(failure)
		return fail("parse failed")
	}
	fmt.Println("ok")
	return nil
}

func printFailure(d *diag.Diagnostic) {
	if jsonOutput {
		bag := diag.NewBag()
		bag.Add(d)
		js, err := bag.JSON()
		if err == nil {
			fmt.Fprintln(os.Stderr, js)
			return
		}
	}
	fmt.Fprintln(os.Stderr, d.Format())
}
