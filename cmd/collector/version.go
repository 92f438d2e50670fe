// Version command for the collector CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the collector release version, overridable at link time.
var Version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the collector version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("collector", Version)
	},
}
