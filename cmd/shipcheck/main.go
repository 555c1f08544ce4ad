// shipcheck tracks a project checklist (build steps, acceptance tests and
// submission links) and derives whether the project has shipped.
//
// Usage:
//
//	shipcheck checklist [steps|tests]
//	shipcheck check|uncheck <step|test> <id>
//	shipcheck proof
//	shipcheck submit --lovable <url> --github <url> --deployed <url>
//	shipcheck status | submission | copy | history | watch
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/shipcheck/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
