package main

import (
	"fmt"
	"os"

	"github.com/ratchet-dev/ratchet/internal/cli"
	"github.com/ratchet-dev/ratchet/pkg/def"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <definition>",
	Short: "Render a readable summary of a definition",
	Long:  `Formats the definition's states, messages and rule table as styled markdown.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := def.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		out, err := cli.Explain(d)
		if err != nil {
			// Styling failed; the raw markdown is still worth printing.
			fmt.Print(cli.Describe(d))
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
