package main

import (
	"fmt"
	"os"

	"github.com/ratchet-dev/ratchet/internal/validator"
	"github.com/ratchet-dev/ratchet/pkg/def"
	"github.com/spf13/cobra"
)

var vetCmd = &cobra.Command{
	Use:   "vet <definition>",
	Short: "Check a definition for suspicious constructs",
	Long: `Validates the definition and reports shadowed rules, handlers on the
wrong rule shape, unreachable states and states without rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runVet(args); err != nil {
			fmt.Printf("Vet failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Definition is clean! ✅")
	},
}

func init() {
	rootCmd.AddCommand(vetCmd)
}

func runVet(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: ratchet vet <definition>")
	}

	d, err := def.Load(args[0])
	if err != nil {
		return err
	}

	findings := validator.Lint(d)
	if len(findings) == 0 {
		return nil
	}

	for _, f := range findings {
		fmt.Printf("  - %s\n", f)
	}
	return fmt.Errorf("%d findings", len(findings))
}
