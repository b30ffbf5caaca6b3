// Package main is the entry point for the ml-explorer server.
package main

import (
	"os"

	"github.com/donaldgifford/ml-explorer/cmd/ml-explorer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
