package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is filled in by `go build -ldflags "-X main.version=..."`; left
// empty for `go run`/`go install`.
var version string

var rootCmd = &cobra.Command{
	Use:   "dals",
	Short: "Approximate Logic Synthesis engine",
	Long:  "dals reduces a combinational netlist's critical-path delay by substitution-based approximation under an error budget.",
}

// Execute runs the command tree; it is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func applyVerbosity(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

func getFlag(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return v
}
