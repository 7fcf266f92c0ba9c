package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the build via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smartcalc %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
