// Package validator lints machine definitions for constructs that are legal
// but almost always mistakes: shadowed rules, builtin handlers on the wrong
// rule shape, and states the rule graph never reaches.
package validator

import (
	"fmt"

	"github.com/ratchet-dev/ratchet/pkg/def"
)

// Lint inspects a structurally valid definition and returns human-readable
// findings, one per problem. An empty result means the definition is clean.
// Findings are advisory; the engine will still compile and run the table.
func Lint(d *def.Definition) []string {
	if len(d.States) == 0 {
		return nil
	}

	var findings []string

	// 1. Shadowed rules. Dispatch is first-match-wins, so a later rule for
	// the same (state, message) pair is dead.
	type key struct{ from, on string }
	first := make(map[key]int)
	for i, r := range d.Rules {
		k := key{r.From, r.On}
		if j, seen := first[k]; seen {
			findings = append(findings, fmt.Sprintf(
				"rule %d is shadowed by rule %d: state %q already handles %q",
				i, j, r.From, r.On))
			continue
		}
		first[k] = i
	}

	// 2. Builtin handlers on the wrong rule shape. Custom handler names are
	// opaque, so only the two unambiguous pairings are flagged.
	for i, r := range d.Rules {
		if r.To == def.TerminalName && r.Handler == def.DefaultHandler {
			findings = append(findings, fmt.Sprintf(
				"rule %d: terminal rule uses the %q handler, so the automaton never completes",
				i, def.DefaultHandler))
		}
		if r.To != def.TerminalName && r.Handler == def.DefaultTerminalHandler {
			findings = append(findings, fmt.Sprintf(
				"rule %d: %q handler on a non-terminal rule fails at dispatch",
				i, def.DefaultTerminalHandler))
		}
	}

	// 3. Crawl the rule graph from the first declared state and report
	// states no chain of transitions reaches. Automatons can be spawned at
	// any state, so unreachable is advisory rather than fatal.
	start := d.States[0]
	visited := make(map[string]bool)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, r := range d.Rules {
			if r.From != current || r.To == def.TerminalName {
				continue
			}
			if !visited[r.To] {
				queue = append(queue, r.To)
			}
		}
	}

	for _, s := range d.States {
		if !visited[s] {
			findings = append(findings, fmt.Sprintf("state %q is unreachable from %q", s, start))
		}
	}

	// 4. States with no rules at all. Any message delivered there fails the
	// whole pass.
	hasRules := make(map[string]bool, len(d.States))
	for _, r := range d.Rules {
		hasRules[r.From] = true
	}
	for _, s := range d.States {
		if !hasRules[s] {
			findings = append(findings, fmt.Sprintf(
				"state %q has no rules; any message delivered there fails the pass", s))
		}
	}

	return findings
}
