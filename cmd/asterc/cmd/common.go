package cmd

import (
	"fmt"
	"os"

	"github.com/asterlang/aster/internal/config"
	"github.com/asterlang/aster/pkg/compiler"
)

// loadOptions builds the Options a subcommand compiles with: config.Default
// unless --config names a YAML file, in which case its fields override the
// default.
func loadOptions() (*config.Options, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// compileArgs compiles every path in args (files or directories, per
// pkg/compiler.CompileFiles), falling back to the configured SourcePaths
// (the current directory by default) when no path is given.
func compileArgs(args []string) (*compiler.Result, *config.Options, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, nil, err
	}
	paths := args
	if len(paths) == 0 {
		paths = opts.SourcePaths
	}
	result, err := compiler.New(opts).CompileFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	return result, opts, nil
}

// printDiagnostics renders result's diagnostics as JSON or plain text,
// depending on the --json flag, to stderr so a piped dump-ast/dump-symbols
// payload on stdout stays parseable even when diagnostics exist.
func printDiagnostics(result *compiler.Result) error {
	if len(result.Bag.All()) == 0 {
		return nil
	}
	if jsonOutput {
		js, err := result.Bag.JSON()
		if err != nil {
			return fmt.Errorf("rendering diagnostics as JSON: %w", err)
		}
		fmt.Fprintln(os.Stderr, js)
		return nil
	}
	fmt.Fprintln(os.Stderr, result.Bag.FormatAll())
	return nil
}
