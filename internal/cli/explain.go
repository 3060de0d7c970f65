package cli

import (
	"fmt"
	"strings"

	"github.com/ratchet-dev/ratchet/internal/presentation/tui"
	"github.com/ratchet-dev/ratchet/pkg/def"
)

// Describe renders a definition as markdown: name, doc, declared names and
// the full rule table.
func Describe(d *def.Definition) string {
	var sb strings.Builder

	title := d.Name
	if title == "" {
		title = "machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if d.Doc != "" {
		fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(d.Doc))
	}

	fmt.Fprintf(&sb, "**States:** %s\n\n", strings.Join(d.States, ", "))
	fmt.Fprintf(&sb, "**Messages:** %s\n\n", strings.Join(d.Messages, ", "))

	sb.WriteString("| From | On | To | Handler |\n")
	sb.WriteString("|------|----|----|---------|\n")
	for _, r := range d.Rules {
		handler := r.Handler
		if handler == "" {
			handler = def.DefaultHandler
			if r.To == def.TerminalName {
				handler = def.DefaultTerminalHandler
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", r.From, r.On, r.To, handler)
	}

	return sb.String()
}

// Explain renders the description for a terminal.
func Explain(d *def.Definition) (string, error) {
	return tui.RenderMarkdown(Describe(d))
}
