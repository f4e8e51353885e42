// Package config loads compiler options from a YAML document — the
// ambient configuration layer spec.md's core component list omits but
// every complete compiler needs: which directories hold source files and
// using-directive search roots, whether warnings should be promoted to
// errors, and how many diagnostics to collect before giving up on a
// hopelessly broken file. There is no teacher analogue (DWScript's CLI
// takes flags only); the shape instead follows the ecosystem convention a
// YAML-driven Go CLI uses, unmarshaling straight into a plain options
// struct with `goccy/go-yaml` rather than hand-rolling a flag set for
// every option up front.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Options holds everything cmd/asterc and pkg/compiler need to run a
// compilation beyond the source files themselves.
type Options struct {
	// SourcePaths lists directories or individual files to parse. A
	// directory is scanned non-recursively for ".as" files.
	SourcePaths []string `yaml:"sourcePaths"`

	// SearchPaths is loaded from the config file but not consulted by
	// compilation: only SourcePaths decides which files are parsed, and
	// using-directives resolve against those files alone.
	SearchPaths []string `yaml:"searchPaths"`

	// WarningsAsErrors promotes every warning-severity diagnostic to an
	// error for the purposes of HasErrors' pass/fail verdict, without
	// changing how it prints (spec.md §7 leaves presentation out of
	// scope; this only affects the exit-code decision cmd/asterc makes).
	WarningsAsErrors bool `yaml:"warningsAsErrors"`

	// MaxDiagnostics caps how many diagnostics a single run reports
	// before the bag stops accepting more; zero means unlimited. This
	// exists for pathologically broken input where the resolver's
	// "collect, don't abort" policy would otherwise produce an
	// unreadable wall of cascading errors.
	MaxDiagnostics int `yaml:"maxDiagnostics"`
}

// Default returns the options a bare `asterc` invocation uses when no
// config file is given: the current directory as the only source path, no
// extra search paths, warnings left as warnings, and no diagnostic cap.
func Default() *Options {
	return &Options{
		SourcePaths: []string{"."},
	}
}

// Load reads and parses the YAML document at path into an Options value
// seeded from Default, so a config file only needs to set the fields it
// wants to override.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return opts, nil
}
