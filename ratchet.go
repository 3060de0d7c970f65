package ratchet

import (
	"fmt"
	"log/slog"

	"github.com/ratchet-dev/ratchet/internal/compiler"
	"github.com/ratchet-dev/ratchet/internal/logging"
	"github.com/ratchet-dev/ratchet/internal/presentation/graph"
	"github.com/ratchet-dev/ratchet/internal/runtime"
	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/middleware"
)

// Machine is the high-level entry point for the ratchet library.
// It compiles a rule table and wraps the internal runtime behind a small,
// stable surface for hosts.
//
// A Machine is not safe for concurrent use. The host owns the loop: deliver
// messages with Send, then call Run (or RunToIdle) from a single goroutine,
// or serialize access externally the way pkg/adapters/http does.
type Machine struct {
	rt          *runtime.Machine
	observer    domain.Observer
	logger      *slog.Logger
	middlewares []middleware.Middleware
}

// Option configures a Machine during New.
type Option func(*Machine)

// WithObserver registers a transition observer, invoked before each handler.
// Compose several with domain.CombineObservers.
func WithObserver(obs domain.Observer) Option {
	return func(m *Machine) {
		m.observer = obs
	}
}

// WithLogger sets a structured logger for compiler warnings and runtime
// diagnostics. Without it the machine is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithMiddleware wraps every rule handler in the given middlewares before the
// table is compiled. The first middleware is the outermost. Calls accumulate:
// WithMiddleware(a), WithMiddleware(b) equals WithMiddleware(a, b).
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(m *Machine) {
		m.middlewares = append(m.middlewares, mws...)
	}
}

// New compiles the rule table and builds a machine around it.
//
// The rule list must end with the domain.End() sentinel; rules are matched
// first-declared-first. Compilation fails on a missing sentinel or a nil
// handler.
func New(rules []domain.Rule, opts ...Option) (*Machine, error) {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}

	if len(m.middlewares) > 0 {
		wrapped := make([]domain.Rule, len(rules))
		copy(wrapped, rules)
		for i := range wrapped {
			if wrapped[i].CurrentState == domain.EndOfTable || wrapped[i].Handler == nil {
				continue
			}
			wrapped[i].Handler = middleware.Chain(wrapped[i].Handler, m.middlewares...)
		}
		rules = wrapped
	}

	table, err := compiler.Compile(rules, m.logger)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	rtOpts := []runtime.Option{runtime.WithLogger(m.logger)}
	if m.observer != nil {
		rtOpts = append(rtOpts, runtime.WithObserver(m.observer))
	}
	m.rt = runtime.New(table, rtOpts...)
	return m, nil
}

type spawnSettings struct {
	payload any
	hook    domain.DestroyHook
}

// SpawnOption configures a single automaton at spawn time.
type SpawnOption func(*spawnSettings)

// WithPayload attaches an opaque payload to the automaton. The machine never
// inspects it; it is handed back to every handler and to the destroy hook.
func WithPayload(payload any) SpawnOption {
	return func(s *spawnSettings) {
		s.payload = payload
	}
}

// WithDestroyHook registers a hook fired exactly once when the automaton is
// destroyed, whether by Destroy, by a completing transition, or by Close.
func WithDestroyHook(hook domain.DestroyHook) SpawnOption {
	return func(s *spawnSettings) {
		s.hook = hook
	}
}

// Spawn creates an automaton at the given state. It starts as StatusNew with
// an empty mailbox and is classified on the next Run.
func (m *Machine) Spawn(initial domain.StateID, opts ...SpawnOption) (domain.Automaton, error) {
	var s spawnSettings
	for _, opt := range opts {
		opt(&s)
	}
	rtOpts := make([]runtime.SpawnOption, 0, 2)
	if s.payload != nil {
		rtOpts = append(rtOpts, runtime.WithPayload(s.payload))
	}
	if s.hook != nil {
		rtOpts = append(rtOpts, runtime.WithDestroyHook(s.hook))
	}
	return m.rt.Spawn(initial, rtOpts...)
}

// Run executes one bounded pass: classify automatons that entered New since
// the last pass, then drain every mailbox that classification marked Active.
// It reports whether another pass has work waiting.
//
// Any dispatch failure aborts the rest of the pass and is returned as a
// *domain.UnhandledError, *domain.HandlerError or *domain.CompletionError.
// The machine is left exactly at the failure point, so a corrected host can
// resume with another Run.
func (m *Machine) Run() (bool, error) {
	return m.rt.Run()
}

// RunToIdle calls Run until no work remains and returns the number of passes.
// A positive maxPasses bounds the loop; exhausting it with work still queued
// returns domain.ErrPendingWork. Zero or negative means unbounded.
func (m *Machine) RunToIdle(maxPasses int) (int, error) {
	return m.rt.RunToIdle(maxPasses)
}

// Close destroys every remaining automaton, firing each destroy hook exactly
// once, and marks the machine closed. Idempotent.
func (m *Machine) Close() error {
	return m.rt.Close()
}

// Stats reports how many automatons sit in each status collection.
func (m *Machine) Stats() domain.Stats {
	return m.rt.Stats()
}

// Table exposes the compiled transition table. Treat it as read-only.
func (m *Machine) Table() domain.Table {
	return m.rt.Table()
}

// Graph renders the compiled table as Graphviz dot. Name tables are indexed
// by id and may be nil or partial; unnamed ids appear as s<N> and m<N>.
func (m *Machine) Graph(stateNames, msgNames []string) string {
	return graph.Render(m.rt.Table(), stateNames, msgNames)
}
