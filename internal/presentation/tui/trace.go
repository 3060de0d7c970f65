package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Tracer prints dispatched transitions as a run progresses. Color is only
// used when the output is a real terminal.
type Tracer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTracer builds a tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	profile := termenv.Ascii
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.ColorProfile()
	}
	return &Tracer{out: out, profile: profile}
}

// Transition prints a single dispatched transition.
func (t *Tracer) Transition(from, msg, to string) {
	arrow := termenv.String(fmt.Sprintf("--%s-->", msg)).Foreground(t.profile.Color("#f59e0b"))
	fmt.Fprintf(t.out, "  %s %s %s\n",
		termenv.String(from).Foreground(t.profile.Color("#e5e7eb")),
		arrow,
		termenv.String(to).Foreground(t.profile.Color("#e5e7eb")))
}
