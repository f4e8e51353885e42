package cmd

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Parse and resolve a program, reporting diagnostics only",
	Long: `check runs the full parse + four-pass resolve pipeline over the given
files or directories and reports every diagnostic it collects. It exits
non-zero if resolution produced any error (or any warning, with
warningsAsErrors set in the config file).`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	result, opts, err := compileArgs(args)
	if err != nil {
		return err
	}
	if err := printDiagnostics(result); err != nil {
		return err
	}
	if result.HasErrors(opts) {
		return fail("check failed: %s", result.Bag.Summary())
	}
	return nil
}
