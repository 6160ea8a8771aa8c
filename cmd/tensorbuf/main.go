// Command tensorbuf quantizes, analyzes and packages raw float32 buffers.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/tensorbuf/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
