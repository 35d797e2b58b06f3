package main

import (
	"os"

	"github.com/quantfabric/universe/cmd/universe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
