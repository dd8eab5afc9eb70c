// main is the entry point for the chessions CLI.
package main

import (
	"github.com/christianmadden/chess.com-utils/cmd"
	"github.com/christianmadden/chess.com-utils/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		internal.FatalError("Command failed", err)
	}
}
