package tui

import (
	"bytes"
	"testing"
)

func TestTracer_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	tr.Transition("closed", "open", "open")
	tr.Transition("open", "demolish", "_")

	// A buffer is not a terminal, so the output carries no escape codes.
	want := "  closed --open--> open\n  open --demolish--> _\n"
	if buf.String() != want {
		t.Errorf("trace = %q, want %q", buf.String(), want)
	}
}
