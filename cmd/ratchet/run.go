package main

import (
	"fmt"
	"os"

	"github.com/ratchet-dev/ratchet/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Play a scenario against its machine definition",
	Long: `Loads a scenario file, builds the machine it names and plays the scripted
steps: spawning automatons, queueing messages and running passes. Transitions
are traced to stdout as they dispatch.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		opts := cli.RunOptions{
			ScenarioPath: args[0],
			Debug:        debug,
			Quiet:        quiet,
		}

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("debug", false, "Log engine internals to stderr")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and trace output")
}
