package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ratchet",
	Short: "Ratchet is an event-driven automaton engine",
	Long: `Ratchet runs tables of transition rules as cooperating automatons.
Definitions are plain YAML files; scenarios script spawns, messages and
passes against them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
