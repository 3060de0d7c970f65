package ports

import "github.com/ratchet-dev/ratchet/pkg/domain"

// Sender is the message-delivery capability of an automaton handle. Event
// sources (feeders, hosts, bridges) depend on this instead of the full
// domain.Automaton so they cannot reach lifecycle operations.
type Sender interface {
	// Send appends a message to the target's mailbox. It never processes
	// anything inline; delivery to a destroyed target fails with
	// domain.ErrDestroyed.
	Send(msg domain.MsgType, payload any) error
}

// Every automaton handle is a Sender.
var _ Sender = (domain.Automaton)(nil)
