package main

import (
	"os"

	"github.com/rmaia/fiicompass/cmd/compass/commands"
)

// main is the entry point for the compass CLI:
// go run ./cmd/compass [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
