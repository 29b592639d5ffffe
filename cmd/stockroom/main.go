// Package main provides the stockroom CLI: a single-user tracker for
// raw-material stock records with emailed review reminders.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
