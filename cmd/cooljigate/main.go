// Package main is the entry point for the cooljigate CLI.
package main

import (
	"os"

	"github.com/darkstorm/cooljigate/cmd/cooljigate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
