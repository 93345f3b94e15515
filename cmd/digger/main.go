// Package main is the entry point for the digger CLI client.
package main

import (
	"github.com/diggerweb/backend/cmd/digger/cmd"
)

func main() {
	cmd.Execute()
}
