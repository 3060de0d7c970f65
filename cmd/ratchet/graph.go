package main

import (
	"fmt"
	"os"

	"github.com/ratchet-dev/ratchet"
	"github.com/ratchet-dev/ratchet/pkg/def"
	"github.com/ratchet-dev/ratchet/pkg/registry"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the rule table as a dot graph",
	Long:  `Compiles the definition and prints a Graphviz digraph of its transitions.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := def.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		rules, err := d.Build(registry.New())
		if err != nil {
			fmt.Printf("Error building rules: %v\n", err)
			os.Exit(1)
		}

		m, err := ratchet.New(rules)
		if err != nil {
			fmt.Printf("Error compiling table: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		fmt.Print(m.Graph(d.States, d.Messages))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
