// Package main is the entry point for the diggerweb backend server.
package main

import (
	"os"

	"github.com/diggerweb/backend/cmd/diggerweb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
