// Package main is the entry point for the schwimmzeiten CLI.
package main

import (
	"os"

	"github.com/klabast/schwimmzeiten/cmd/schwimmzeiten/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
