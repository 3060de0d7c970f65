// Package middleware wraps transition handlers with cross-cutting behavior:
// panic containment, dispatch logging, and policy gates. Middlewares compose
// with Chain or apply table-wide through the engine's WithMiddleware option.
package middleware

import (
	"fmt"
	"log/slog"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Middleware wraps a Handler to add behavior around dispatch.
type Middleware func(domain.Handler) domain.Handler

// Chain wraps h in the given middlewares. The first middleware is the
// outermost: Chain(h, a, b) runs a before b before h.
func Chain(h domain.Handler, mws ...Middleware) domain.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover converts handler panics into dispatch errors. The pass freezes
// like it would for any failing handler, instead of crashing the host.
func Recover() Middleware {
	return func(next domain.Handler) domain.Handler {
		return func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (out domain.Outcome, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(a, data, ruleData, msg, payload)
		}
	}
}

// Logging reports every dispatch: failures at warn, the rest at debug.
func Logging(logger *slog.Logger) Middleware {
	return func(next domain.Handler) domain.Handler {
		return func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
			out, err := next(a, data, ruleData, msg, payload)
			if err != nil {
				logger.Warn("dispatch failed", "state", a.Current(), "msg", msg, "error", err)
				return out, err
			}
			logger.Debug("dispatched", "state", a.Current(), "msg", msg, "complete", out == domain.Complete)
			return out, err
		}
	}
}

// Policy decides whether a dispatch may proceed. A non-nil error blocks the
// handler and freezes the pass with that error.
type Policy func(a domain.Automaton, msg domain.MsgType, payload any) error

// Guard runs the policy before the handler.
func Guard(p Policy) Middleware {
	return func(next domain.Handler) domain.Handler {
		return func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
			if err := p(a, msg, payload); err != nil {
				return domain.Advance, err
			}
			return next(a, data, ruleData, msg, payload)
		}
	}
}

// MultiPolicy chains policies; the first refusal wins.
func MultiPolicy(policies ...Policy) Policy {
	return func(a domain.Automaton, msg domain.MsgType, payload any) error {
		for _, p := range policies {
			if err := p(a, msg, payload); err != nil {
				return err
			}
		}
		return nil
	}
}
