// ABOUTME: Kaomoji CLI - Entry point for the kaomoji keyword database tool
// ABOUTME: Initializes CLI and routes commands
package main

import (
	"fmt"
	"os"

	"github.com/harper/kaomoji/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
