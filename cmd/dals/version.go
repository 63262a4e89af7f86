package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "report the dals build version",
	Run: func(cmd *cobra.Command, args []string) {
		if version != "" {
			fmt.Println("dals", version)
			return
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Println("dals", info.Main.Version)
			return
		}
		fmt.Println("dals (unknown version)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
