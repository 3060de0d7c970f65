package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/ports"
)

// entry is the wire shape of one queued event: {"msg": 2, "payload": ...}.
// JSON numbers in the payload arrive as float64.
type entry struct {
	Msg     domain.MsgType `json:"msg"`
	Payload any            `json:"payload,omitempty"`
}

// Feeder drains a Redis list of JSON events into a ports.Sender. It is the
// bridge for hosts whose event source is a Redis queue: other producers
// RPUSH events, the host FeedOnces them into an automaton between passes.
type Feeder struct {
	client *backend.Client
	key    string
}

// NewFeeder creates a feeder reading from the given list key.
func NewFeeder(client *backend.Client, key string) *Feeder {
	return &Feeder{client: client, key: key}
}

// FeedOnce pops queued events until the list is empty and sends each to the
// target. It returns the number of events delivered. A malformed entry or a
// failed send stops the drain; the failing entry is consumed, everything
// still queued stays in Redis.
func (f *Feeder) FeedOnce(ctx context.Context, target ports.Sender) (int, error) {
	delivered := 0
	for {
		val, err := f.client.LPop(ctx, f.key).Result()
		if errors.Is(err, backend.Nil) {
			return delivered, nil
		}
		if err != nil {
			return delivered, fmt.Errorf("failed to pop from redis: %w", err)
		}

		var e entry
		if err := json.Unmarshal([]byte(val), &e); err != nil {
			return delivered, fmt.Errorf("malformed event %q: %w", val, err)
		}
		if err := target.Send(e.Msg, e.Payload); err != nil {
			return delivered, fmt.Errorf("failed to deliver event: %w", err)
		}
		delivered++
	}
}
