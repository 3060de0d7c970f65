package domain

// StateID identifies a state in the compiled table. States are dense
// non-negative ids; the only meaningful negative id is Terminal.
type StateID int

// MsgType identifies a kind of message. Hosts define their own enums.
type MsgType int

const (
	// Terminal is the pseudo-state a rule may map to, never originate from.
	// An automaton never rests there: completing a Terminal rule destroys it.
	Terminal StateID = -1

	// EndOfTable is the CurrentState of the sentinel row terminating a rule
	// table. It shares Terminal's value but marks a different thing: the end
	// of the declaration list, not a destination.
	EndOfTable StateID = -1
)

// Outcome is a handler's verdict on the message it was invoked for.
type Outcome int

const (
	// Advance accepts the message: the automaton moves to the rule's
	// NextState and its mailbox keeps draining.
	Advance Outcome = iota

	// Complete signals the automaton is finished. Legal only on rules whose
	// NextState is Terminal; the automaton is destroyed on the spot.
	Complete
)

// Handler is the transition callback. It runs synchronously on the goroutine
// that called Run, with the automaton handle, the automaton payload, the
// rule's Data, and the consumed message. Returning a non-nil error aborts the
// whole pass; the message stays queued and no state is advanced.
type Handler func(a Automaton, data any, ruleData any, msg MsgType, payload any) (Outcome, error)

// Observer is notified of every matched transition just before its handler
// runs. Observers cannot veto or fail a transition.
type Observer func(from StateID, msg MsgType, to StateID)

// DestroyHook runs exactly once when its automaton is destroyed, whatever the
// cause: an explicit Destroy, a Complete outcome, or machine Close. It
// receives the automaton payload.
type DestroyHook func(payload any)

// Rule is one row of a transition table: in CurrentState, a message of type
// Msg fires Handler and moves the automaton to NextState. Tables are flat
// ordered lists ending with the sentinel row; within a state, earlier rules
// win over later ones.
type Rule struct {
	CurrentState StateID
	Msg          MsgType
	Handler      Handler
	Data         any
	NextState    StateID
}

// End returns the sentinel row that must terminate every rule table.
func End() Rule {
	return Rule{CurrentState: EndOfTable}
}

// CombineObservers fans each transition out to every given observer in order,
// skipping nil entries.
func CombineObservers(obs ...Observer) Observer {
	return func(from StateID, msg MsgType, to StateID) {
		for _, o := range obs {
			if o != nil {
				o(from, msg, to)
			}
		}
	}
}
