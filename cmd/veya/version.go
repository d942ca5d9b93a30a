package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the veya version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("veya %s (%s/%s)\n", cfg.Version, runtime.GOOS, runtime.GOARCH)
	},
}
