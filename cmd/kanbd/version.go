package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Build are stamped at link time via -ldflags.
var (
	Version = "dev"
	Build   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kanbd version %s (%s)\n", Version, Build)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
