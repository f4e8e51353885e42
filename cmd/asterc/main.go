// Command asterc is a thin cobra shell over pkg/compiler: spec.md §1
// explicitly keeps the driver, option parsing, and error presentation out
// of the core's scope, so this binary does no formatting policy or build
// orchestration of its own — it only wires the library's Compile result to
// stdout/stderr and an exit code, the same role the teacher's
// cmd/dwscript/main.go plays over its own library.
package main

import (
	"fmt"
	"os"

	"github.com/asterlang/aster/cmd/asterc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
