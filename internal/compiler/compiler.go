package compiler

import (
	"fmt"
	"log/slog"

	"github.com/ratchet-dev/ratchet/internal/logging"
	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Compile converts a flat, ordered rule list into the dense per-state table
// the run loop dispatches against. The list must end with the sentinel row
// (domain.End()); rules after it are ignored.
//
// The state count is 1 + the highest state id referenced on either side of a
// rule, so a state that only ever appears as a destination still exists, with
// zero outgoing transitions. Declaration order within a state is preserved:
// lookup takes the first match, and any later duplicate of a (state, message)
// pair is dead. Duplicates are legal but almost always a mistake, so each one
// is logged.
func Compile(rules []domain.Rule, logger *slog.Logger) (domain.Table, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	end := -1
	maxState := domain.StateID(0)
	for i, r := range rules {
		if r.CurrentState == domain.EndOfTable {
			end = i
			break
		}
		if r.Handler == nil {
			return nil, fmt.Errorf("rule %d (state %d, message %d): %w", i, r.CurrentState, r.Msg, domain.ErrNilHandler)
		}
		if r.CurrentState > maxState {
			maxState = r.CurrentState
		}
		if r.NextState > maxState {
			maxState = r.NextState
		}
	}
	if end < 0 {
		return nil, domain.ErrMissingSentinel
	}
	if trailing := len(rules) - end - 1; trailing > 0 {
		logger.Warn("ignoring rules after sentinel row", "count", trailing)
	}

	table := make(domain.Table, maxState+1)
	for _, r := range rules[:end] {
		s := r.CurrentState
		if s < 0 {
			// Not the sentinel but not a real state either; such a rule can
			// never fire.
			logger.Warn("dropping rule with negative state", "state", s, "message", r.Msg)
			continue
		}
		if _, shadowed := table.Lookup(s, r.Msg); shadowed {
			logger.Warn("duplicate rule is shadowed by an earlier one",
				"state", s, "message", r.Msg)
		}
		table[s].Transitions = append(table[s].Transitions, domain.Transition{
			Msg:       r.Msg,
			Handler:   r.Handler,
			Data:      r.Data,
			NextState: r.NextState,
		})
	}
	return table, nil
}
