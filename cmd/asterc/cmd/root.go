package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	configFile string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "asterc",
	Short: "Aster front-end driver",
	Long: `asterc is a thin command-line shell over the Aster compiler front end.

Aster is a statically-typed, single-inheritance, class-based language
targeting a CLR-like managed runtime. This driver only parses and
type-checks a program and reports diagnostics; it does not emit bytecode,
optimize, or execute anything — those are out of the front end's scope.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file (internal/config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print diagnostics as JSON instead of the default text format")
}

func fail(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
