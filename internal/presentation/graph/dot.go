package graph

import (
	"fmt"
	"strings"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Render produces Graphviz dot syntax from a compiled table: one edge per
// transition, in state order and then declaration order, so the output is
// byte-stable for a given table.
//
// Name tables are indexed by id. Ids without a name degrade to "s<N>" for
// states and "m<N>" for messages; a terminal next state renders as "_".
func Render(table domain.Table, stateNames, msgNames []string) string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")

	for id, state := range table {
		from := stateName(domain.StateID(id), stateNames)
		for _, tr := range state.Transitions {
			to := "_"
			if tr.NextState != domain.Terminal {
				to = stateName(tr.NextState, stateNames)
			}
			fmt.Fprintf(&sb, "  %s -> %s [label=%q];\n", from, to, msgName(tr.Msg, msgNames))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func stateName(id domain.StateID, names []string) string {
	if id >= 0 && int(id) < len(names) && names[id] != "" {
		return names[id]
	}
	return fmt.Sprintf("s%d", id)
}

func msgName(msg domain.MsgType, names []string) string {
	if msg >= 0 && int(msg) < len(names) && names[msg] != "" {
		return names[msg]
	}
	return fmt.Sprintf("m%d", msg)
}
