package main

import (
	"fmt"
	"strings"

	"github.com/ratchet-dev/ratchet"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ratchet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ratchet version %s\n", strings.TrimSpace(ratchet.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
