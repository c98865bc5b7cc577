// Command dirsum reports statistics for a directory tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/dirsum/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(os.Args[1:]); err != nil {
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
