// Package main provides the dataservice CLI for exercising a layered
// in-memory data service.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
