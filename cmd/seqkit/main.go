// Command seqkit runs container scenarios against the array and linked
// list engines and journals the results.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/seqkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
