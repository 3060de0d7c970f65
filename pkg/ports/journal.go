package ports

import (
	"context"
	"log/slog"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Journal is an ordered, append-only log of dispatched transitions. It lets
// hosts audit or replay what a machine did without coupling the engine to a
// storage backend.
type Journal interface {
	// Append records one transition at the tail of the log.
	Append(ctx context.Context, rec domain.TransitionRecord) error

	// Tail returns the most recent n records in append order.
	// n <= 0 returns the whole log.
	Tail(ctx context.Context, n int) ([]domain.TransitionRecord, error)
}

// JournalObserver bridges a Journal onto domain.Observer so it can be wired
// into a machine with WithObserver. Observers run inside the dispatch pass
// and must not fail it, so append errors are logged and swallowed; pass a
// nil logger to drop them silently.
func JournalObserver(ctx context.Context, j Journal, logger *slog.Logger) domain.Observer {
	return func(from domain.StateID, msg domain.MsgType, to domain.StateID) {
		rec := domain.TransitionRecord{From: from, Msg: msg, To: to}
		if err := j.Append(ctx, rec); err != nil && logger != nil {
			logger.Warn("journal append failed", "error", err, "from", from, "msg", msg, "to", to)
		}
	}
}
