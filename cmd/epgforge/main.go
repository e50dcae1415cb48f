// Package main is the entry point for the epgforge application.
package main

import (
	"os"

	"github.com/epgforge/epgforge/cmd/epgforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
