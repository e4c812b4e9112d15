// Package main is the entry point for the Boardbot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/bai-admin/boardbot/cmd/boardbot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
