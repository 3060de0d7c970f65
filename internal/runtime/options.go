package runtime

import (
	"log/slog"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Option configures a Machine at construction.
type Option func(*Machine)

// WithObserver installs a transition observer, called before each handler.
func WithObserver(obs domain.Observer) Option {
	return func(m *Machine) {
		m.observer = obs
	}
}

// WithLogger routes the machine's diagnostics to the given logger. A nil
// logger is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *Machine) {
		if log != nil {
			m.log = log
		}
	}
}

type spawnConfig struct {
	payload any
	hook    domain.DestroyHook
}

// SpawnOption configures a single automaton at spawn time.
type SpawnOption func(*spawnConfig)

// WithPayload attaches an opaque payload, handed to every handler and to the
// destroy hook.
func WithPayload(payload any) SpawnOption {
	return func(c *spawnConfig) {
		c.payload = payload
	}
}

// WithDestroyHook registers a hook fired exactly once when the automaton is
// destroyed.
func WithDestroyHook(hook domain.DestroyHook) SpawnOption {
	return func(c *spawnConfig) {
		c.hook = hook
	}
}
