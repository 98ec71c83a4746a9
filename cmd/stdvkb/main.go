// Package main provides the entry point for the stdvkb CLI.
package main

import (
	"os"

	"github.com/AlmazPRO7/StdvBot/cmd/stdvkb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
