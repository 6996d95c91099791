package main

import (
	"os"

	"fhsslink/cmd/fhsslink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
