// Command plumbgrid runs and validates pipe network scenarios.
//
//	plumbgrid run scenario.yaml [--db world.db] [--config plumbgrid.yaml] [--format text|json] [-v]
//	plumbgrid validate scenario.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plumbgrid:", err)
		os.Exit(exitCode(err))
	}
}
