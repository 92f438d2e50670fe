// Package main provides the wallet collector CLI: the long-running bot plus
// one-shot administrative commands against the same spreadsheet.
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
