// Package main provides the entry point for the fido CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/fido/cmd/fido/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
