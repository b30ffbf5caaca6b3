// Package main is the entry point for the mlx CLI client.
package main

import (
	"github.com/donaldgifford/ml-explorer/cmd/mlx/cmd"
)

func main() {
	cmd.Execute()
}
