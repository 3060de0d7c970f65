package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown formats markdown for the terminal, adapting to the
// light/dark background automatically. Falls back to the raw markdown when
// no renderer can be built.
func RenderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown, err
	}
	return r.Render(markdown)
}
