// Package main provides the zoo CLI.
package main

import (
	"fmt"
	"os"
)

// Version is the zoo release version
const Version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
