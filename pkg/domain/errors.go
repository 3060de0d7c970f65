package domain

import (
	"errors"
	"fmt"
)

// Construction-time errors. These are fatal to machine creation; nothing is
// allocated when New returns one.
var (
	// ErrMissingSentinel is returned when a rule table is not terminated by
	// the sentinel row (see End).
	ErrMissingSentinel = errors.New("rule table has no sentinel row")

	// ErrNilHandler is returned when a rule carries no handler.
	ErrNilHandler = errors.New("rule has no handler")
)

// Lifecycle errors.
var (
	// ErrDestroyed is returned by Send on a destroyed automaton.
	ErrDestroyed = errors.New("automaton destroyed")

	// ErrClosed is returned by Spawn on a closed machine.
	ErrClosed = errors.New("machine closed")

	// ErrUnknownState is returned by Spawn when the initial state lies
	// outside the compiled table.
	ErrUnknownState = errors.New("state outside rule table")

	// ErrPendingWork is returned by RunToIdle when its pass budget runs out
	// with work still queued.
	ErrPendingWork = errors.New("work still pending")
)

// ErrUnknownName is returned when a definition references a state, message
// or handler name that is not declared.
var ErrUnknownName = errors.New("unknown name")

// UnhandledError aborts a pass: an automaton held a message its current state
// has no rule for. The message stays queued and the automaton's state is
// untouched.
type UnhandledError struct {
	State StateID
	Msg   MsgType
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("no transition from state %d for message %d", e.State, e.Msg)
}

// HandlerError aborts a pass: a handler reported failure. The failing message
// stays queued and no state is advanced for it.
type HandlerError struct {
	State StateID
	Msg   MsgType
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler failed in state %d on message %d: %v", e.State, e.Msg, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// CompletionError aborts a pass: a handler returned Complete on a rule whose
// NextState is not Terminal.
type CompletionError struct {
	State StateID
	Msg   MsgType
	Next  StateID
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("handler completed in state %d on message %d but the rule continues to state %d", e.State, e.Msg, e.Next)
}
