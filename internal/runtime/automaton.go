package runtime

import "github.com/ratchet-dev/ratchet/pkg/domain"

// automaton is the machine-owned record behind a domain.Automaton handle.
// Handle and record are the same object; package visibility does the hiding.
type automaton struct {
	m       *Machine
	state   domain.StateID
	status  domain.Status
	payload any
	hook    domain.DestroyHook
	mail    mailbox

	// dead is set once at destruction. The record stays reachable through
	// handles the host still holds, so every operation checks it.
	dead bool
}

var _ domain.Automaton = (*automaton)(nil)

func (a *automaton) Send(msg domain.MsgType, payload any) error {
	if a.dead {
		return domain.ErrDestroyed
	}
	a.mail.push(msg, payload)
	if a.status == domain.StatusInactive {
		a.m.toggle(a)
	}
	return nil
}

func (a *automaton) Destroy() {
	a.m.destroy(a)
}

func (a *automaton) Current() domain.StateID { return a.state }

func (a *automaton) Status() domain.Status { return a.status }

func (a *automaton) Payload() any { return a.payload }

func (a *automaton) Pending() int { return a.mail.len() }
