package domain

// Automaton is the opaque handle to one instance traversing the machine. The
// engine exclusively owns the record behind it; the handle grants no mutation
// beyond the operations below. Handles stay valid after destruction: every
// operation on a destroyed automaton is defined and safe.
type Automaton interface {
	// Send appends a message to the automaton's mailbox. Nothing is processed
	// inline; the message waits for a Run pass. An Inactive automaton is
	// requeued for classification. Sending to a destroyed automaton returns
	// ErrDestroyed.
	Send(msg MsgType, payload any) error

	// Destroy removes the automaton from the machine, discards its queued
	// messages and fires the destroy hook. Idempotent, and safe to call from
	// inside the automaton's own handler; the current pass stops draining it.
	Destroy()

	// Current returns the automaton's current state.
	Current() StateID

	// Status reports which status collection holds the automaton.
	Status() Status

	// Payload returns the opaque payload supplied at spawn, or nil.
	Payload() any

	// Pending returns the number of queued messages.
	Pending() int
}
