// DB Toolbox - utilities for DesignBuilder simulation output.
//
// - No args → GUI mode
// - extract → headless extraction
package main

import (
	"fmt"
	"os"

	"github.com/dbtoolbox/dbtoolbox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
