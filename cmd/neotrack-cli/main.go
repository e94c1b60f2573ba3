// Command neotrack-cli manages the ledger from the terminal.
package main

import (
	"os"

	"neotrack/cmd/neotrack-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
