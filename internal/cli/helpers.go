package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ratchet-dev/ratchet/internal/logging"
	"github.com/ratchet-dev/ratchet/pkg/def"
	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// createLogger configures the command logger. In debug mode it writes to
// stderr so log lines stay out of the trace on stdout.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// systemMessage prints a standardized system line.
func systemMessage(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, ">>> %s\n", fmt.Sprintf(format, args...))
}

// stateName maps an id back to its declared name, falling back to the raw id
// for synthetic states.
func stateName(d *def.Definition, id domain.StateID) string {
	if id == domain.Terminal {
		return def.TerminalName
	}
	if id >= 0 && int(id) < len(d.States) {
		return d.States[id]
	}
	return fmt.Sprintf("s%d", id)
}

func msgName(d *def.Definition, id domain.MsgType) string {
	if id >= 0 && int(id) < len(d.Messages) {
		return d.Messages[id]
	}
	return fmt.Sprintf("m%d", id)
}
