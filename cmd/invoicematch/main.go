// Package main is the entry point for the invoicematch CLI.
package main

import (
	"os"

	"github.com/mmynk/invoicematch/cmd/invoicematch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
