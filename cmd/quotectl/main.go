// Package main is the entry point for the quotectl operator CLI.
package main

import (
	"os"

	"github.com/minnmarket/storefront-backend/cmd/quotectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
