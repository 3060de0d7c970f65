// Package registry maps names to transition handlers, so declarative
// definitions (pkg/def) and tooling can reference behavior by name.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Registry manages named handlers.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]domain.Handler
}

// New creates a registry preloaded with the builtin handlers "advance" and
// "complete".
func New() *Registry {
	r := &Registry{
		handlers: make(map[string]domain.Handler),
	}
	r.Register("advance", Advance)
	r.Register("complete", Complete)
	return r
}

// Register adds a handler under the given name.
// If the name is taken, the handler is overwritten.
func (r *Registry) Register(name string, h domain.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Resolve looks a handler up by name.
func (r *Registry) Resolve(name string) (domain.Handler, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("handler %q: %w", name, domain.ErrUnknownName)
	}
	return h, nil
}

// Names returns the registered handler names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Advance is the builtin no-op handler: every dispatch advances the rule.
func Advance(domain.Automaton, any, any, domain.MsgType, any) (domain.Outcome, error) {
	return domain.Advance, nil
}

// Complete is the builtin terminal handler. It is only legal on rules whose
// next state is domain.Terminal.
func Complete(domain.Automaton, any, any, domain.MsgType, any) (domain.Outcome, error) {
	return domain.Complete, nil
}

// LogHandler builds a handler that records each dispatch and advances. The
// rule's data value, if set, is logged alongside the message.
func LogHandler(logger *slog.Logger) domain.Handler {
	return func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		logger.Info("dispatch",
			"state", a.Current(),
			"msg", msg,
			"payload", payload,
			"rule_data", ruleData,
		)
		return domain.Advance, nil
	}
}
