package domain

// Transition is the compiled form of a Rule, keyed under its source state so
// the CurrentState column is no longer carried.
type Transition struct {
	Msg       MsgType
	Handler   Handler
	Data      any
	NextState StateID
}

// State is one compiled state: the transitions declared for it, in
// declaration order. Order matters; lookup takes the first match, so later
// duplicates are shadowed.
type State struct {
	Transitions []Transition
}

// Table is the compiled rule table, indexed by StateID. A state referenced
// only as a destination exists with zero transitions.
type Table []State

// Lookup returns the first transition out of state s that matches msg. Any
// state outside the table, Terminal included, has no transitions.
func (t Table) Lookup(s StateID, msg MsgType) (Transition, bool) {
	if s < 0 || int(s) >= len(t) {
		return Transition{}, false
	}
	for _, tr := range t[s].Transitions {
		if tr.Msg == msg {
			return tr, true
		}
	}
	return Transition{}, false
}

// Len returns the number of states in the table.
func (t Table) Len() int {
	return len(t)
}
