package main

import (
	"os"

	"github.com/datoactivo/backend/cmd/datoactivo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
