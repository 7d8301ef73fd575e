// ABOUTME: Entry point for the favshelf CLI
// ABOUTME: Terminal client for browsing a storefront catalog and managing favorites

package main

import (
	"fmt"
	"os"

	"github.com/mhartsell/favshelf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
