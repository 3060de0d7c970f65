package runtime

import "github.com/ratchet-dev/ratchet/pkg/domain"

// envelope is one queued message. Envelopes are owned by their mailbox: each
// is consumed exactly once, or discarded when the automaton is destroyed.
type envelope struct {
	msg     domain.MsgType
	payload any
}

// mailbox is the ordered queue of pending messages for one automaton.
// Append-only at the tail, consumed from the head, and safe to append to
// while a drain is walking it.
type mailbox struct {
	items []envelope
	head  int
}

func (q *mailbox) push(msg domain.MsgType, payload any) {
	q.items = append(q.items, envelope{msg: msg, payload: payload})
}

// peek returns the head message without consuming it.
func (q *mailbox) peek() (envelope, bool) {
	if q.head >= len(q.items) {
		return envelope{}, false
	}
	return q.items[q.head], true
}

// consume drops the head message. The backing slice is recycled whenever the
// queue empties so a long-lived automaton does not accrete dead envelopes.
func (q *mailbox) consume() {
	if q.head >= len(q.items) {
		return
	}
	q.items[q.head] = envelope{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
}

func (q *mailbox) len() int {
	return len(q.items) - q.head
}

// reset discards every queued message.
func (q *mailbox) reset() {
	q.items = nil
	q.head = 0
}
