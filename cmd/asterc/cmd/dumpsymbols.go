package cmd

import (
	"fmt"

	"github.com/asterlang/aster/internal/emitter"
	"github.com/asterlang/aster/pkg/compiler"
	"github.com/spf13/cobra"
)

var dumpSymbolsCmd = &cobra.Command{
	Use:   "dump-symbols [path...]",
	Short: "Resolve a program and print every handle the emitter provider created",
	Long: `dump-symbols compiles with internal/emitter's RecordingProvider attached
(spec.md §4.6's C9 provider interface) and prints, in request order, every
type/method/field/property/event handle the resolver's pass 5 requested.
There is no real bytecode/metadata emitter in this module — this exists to
make C9's wiring observable without one.`,
	RunE: runDumpSymbols,
}

func init() {
	rootCmd.AddCommand(dumpSymbolsCmd)
}

func runDumpSymbols(_ *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = opts.SourcePaths
	}

	provider := emitter.NewRecordingProvider()
	c := compiler.New(opts).WithEmitter(provider)
	result, err := c.CompileFiles(paths)
	if err != nil {
		return err
	}
	if err := printDiagnostics(result); err != nil {
		return err
	}
	if result.HasErrors(opts) {
		return fail("dump-symbols: %s", result.Bag.Summary())
	}

	for _, call := range provider.Calls {
		fmt.Printf("%s: %s\n", call.Kind, call.Label)
	}
	return nil
}
