package cli

import (
	"os"

	"github.com/ratchet-dev/ratchet"
	"github.com/ratchet-dev/ratchet/internal/presentation/tui"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	ScenarioPath string
	Debug        bool
	Quiet        bool
}

// Execute handles the 'run' command: load the scenario, play it, report.
func Execute(opts RunOptions) error {
	if !opts.Quiet {
		tui.PrintBanner(ratchet.Version)
	}

	sc, err := LoadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}

	if !opts.Quiet && sc.Name != "" {
		systemMessage(os.Stdout, "scenario %q", sc.Name)
	}

	return PlayScenario(sc, os.Stdout, opts)
}
