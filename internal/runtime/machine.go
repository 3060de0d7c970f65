package runtime

import (
	"fmt"
	"log/slog"

	"github.com/ratchet-dev/ratchet/internal/logging"
	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Machine owns every live automaton, partitioned into three disjoint
// collections by status, and executes the batched dispatch pass against the
// compiled table. It is strictly single-threaded: nothing here locks, and
// concurrent callers need external synchronization.
type Machine struct {
	table    domain.Table
	observer domain.Observer
	log      *slog.Logger

	queued    []*automaton // StatusNew
	actives   []*automaton // StatusActive
	inactives []*automaton // StatusInactive

	closed bool
}

// New builds a machine around a compiled table.
func New(table domain.Table, opts ...Option) *Machine {
	m := &Machine{table: table, log: logging.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Spawn creates an automaton at the given state with status New and an empty
// mailbox. It joins the machine's New collection and waits for the next pass
// to classify it.
func (m *Machine) Spawn(initial domain.StateID, opts ...SpawnOption) (domain.Automaton, error) {
	if m.closed {
		return nil, domain.ErrClosed
	}
	if initial < 0 || int(initial) >= len(m.table) {
		return nil, fmt.Errorf("spawn at state %d: %w", initial, domain.ErrUnknownState)
	}
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &automaton{
		m:       m,
		state:   initial,
		status:  domain.StatusNew,
		payload: cfg.payload,
		hook:    cfg.hook,
	}
	m.queued = append(m.queued, a)
	m.log.Debug("spawned automaton", "state", initial)
	return a, nil
}

// Run executes one bounded pass. First every automaton in the New collection
// is classified (Active when mail is pending, Inactive otherwise), fixing the
// set this pass will dispatch. Then each Active automaton's mailbox is
// drained in order. Automatons that become New during the pass wait for the
// next call.
//
// The bool reports whether another pass has work waiting. Any dispatch error
// aborts the rest of the pass and leaves the machine exactly at the failure
// point; automatons earlier in the iteration order keep their progress.
func (m *Machine) Run() (bool, error) {
	for _, a := range snapshot(m.queued) {
		m.toggle(a)
	}
	dispatched := 0
	for _, a := range snapshot(m.actives) {
		if a.dead {
			continue
		}
		if err := m.drain(a); err != nil {
			return false, err
		}
		dispatched++
	}
	m.log.Debug("pass complete", "dispatched", dispatched, "queued", len(m.queued))
	return len(m.queued) > 0, nil
}

// RunToIdle pumps Run until no work remains, returning the number of passes
// executed. A positive maxPasses bounds the pumping: if the budget runs out
// with work still queued the error is domain.ErrPendingWork. Zero or negative
// means unbounded, which spins forever if handlers keep feeding each other.
func (m *Machine) RunToIdle(maxPasses int) (int, error) {
	passes := 0
	for {
		more, err := m.Run()
		passes++
		if err != nil {
			return passes, err
		}
		if !more {
			return passes, nil
		}
		if maxPasses > 0 && passes >= maxPasses {
			return passes, domain.ErrPendingWork
		}
	}
}

// Close destroys every automaton in all three collections, firing each
// destroy hook exactly once, then marks the machine closed so Spawn fails.
// Destroy hooks may themselves spawn; Close keeps sweeping until the
// collections are empty. Idempotent.
func (m *Machine) Close() error {
	for {
		live := snapshot(m.queued)
		live = append(live, snapshot(m.actives)...)
		live = append(live, snapshot(m.inactives)...)
		if len(live) == 0 {
			break
		}
		for _, a := range live {
			m.destroy(a)
		}
	}
	m.closed = true
	return nil
}

// Stats returns the current census of the three status collections.
func (m *Machine) Stats() domain.Stats {
	return domain.Stats{
		New:      len(m.queued),
		Active:   len(m.actives),
		Inactive: len(m.inactives),
	}
}

// Table returns the compiled table. Callers must treat it as read-only.
func (m *Machine) Table() domain.Table {
	return m.table
}

// drain consumes an Active automaton's mailbox head to tail: look up the
// first rule matching (state, message), notify the observer, run the handler,
// then advance and consume on success. Whether another message is in line is
// captured before each handler runs, so when the tail's own handler enqueues
// more mail the drain still ends at the tail and the new mail waits for the
// next pass. A drain that survives its mailbox requeues the automaton as New.
func (m *Machine) drain(a *automaton) error {
	for {
		env, ok := a.mail.peek()
		if !ok {
			break
		}
		tr, ok := m.table.Lookup(a.state, env.msg)
		if !ok {
			return &domain.UnhandledError{State: a.state, Msg: env.msg}
		}
		hadNext := a.mail.len() > 1
		if m.observer != nil {
			m.observer(a.state, env.msg, tr.NextState)
		}
		out, err := tr.Handler(a, a.payload, tr.Data, env.msg, env.payload)
		if err != nil {
			return &domain.HandlerError{State: a.state, Msg: env.msg, Err: err}
		}
		if out == domain.Complete && tr.NextState != domain.Terminal {
			return &domain.CompletionError{State: a.state, Msg: env.msg, Next: tr.NextState}
		}
		if a.dead {
			// The handler destroyed its own automaton mid-drain.
			return nil
		}
		if out == domain.Complete {
			m.destroy(a)
			return nil
		}
		a.state = tr.NextState
		a.mail.consume()
		if !hadNext {
			break
		}
	}
	m.toggle(a)
	return nil
}

// toggle advances an automaton's status one notch: a classified automaton
// requeues as New, a New automaton is classified by mailbox occupancy.
func (m *Machine) toggle(a *automaton) {
	switch a.status {
	case domain.StatusActive:
		a.status = domain.StatusNew
		m.actives = remove(m.actives, a)
		m.queued = append(m.queued, a)
	case domain.StatusInactive:
		a.status = domain.StatusNew
		m.inactives = remove(m.inactives, a)
		m.queued = append(m.queued, a)
	case domain.StatusNew:
		m.queued = remove(m.queued, a)
		if a.mail.len() > 0 {
			a.status = domain.StatusActive
			m.actives = append(m.actives, a)
		} else {
			a.status = domain.StatusInactive
			m.inactives = append(m.inactives, a)
		}
	}
}

// destroy unlinks the automaton from its collection, discards its queued
// mail and fires the destroy hook. Safe to call repeatedly, and from inside
// the automaton's own handler or hook.
func (m *Machine) destroy(a *automaton) {
	if a.dead {
		return
	}
	a.dead = true
	switch a.status {
	case domain.StatusNew:
		m.queued = remove(m.queued, a)
	case domain.StatusActive:
		m.actives = remove(m.actives, a)
	case domain.StatusInactive:
		m.inactives = remove(m.inactives, a)
	}
	a.mail.reset()
	if a.hook != nil {
		a.hook(a.payload)
	}
	m.log.Debug("destroyed automaton", "state", a.state)
}

// snapshot copies a collection so a pass can walk it while handlers mutate
// the original.
func snapshot(list []*automaton) []*automaton {
	if len(list) == 0 {
		return nil
	}
	out := make([]*automaton, len(list))
	copy(out, list)
	return out
}

// remove deletes one element by identity, preserving order.
func remove(list []*automaton, a *automaton) []*automaton {
	for i, x := range list {
		if x == a {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
