// Package redis provides Redis-backed adapters: a transition Journal and a
// list-draining Feeder for hosts that source events from Redis.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// Journal implements ports.Journal on a Redis list (RPUSH/LRANGE), one JSON
// record per element.
type Journal struct {
	client *backend.Client
	key    string
}

// Option configures a Journal.
type Option func(*Journal)

// WithKey overrides the Redis list key.
func WithKey(key string) Option {
	return func(j *Journal) {
		j.key = key
	}
}

// New creates a Redis journal with its own client.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		key:    "ratchet:journal",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append pushes one record onto the tail of the list.
func (j *Journal) Append(ctx context.Context, rec domain.TransitionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := j.client.RPush(ctx, j.key, data).Err(); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Tail returns the most recent n records in append order; n <= 0 returns the
// whole log.
func (j *Journal) Tail(ctx context.Context, n int) ([]domain.TransitionRecord, error) {
	start := int64(0)
	if n > 0 {
		start = int64(-n)
	}
	vals, err := j.client.LRange(ctx, j.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	recs := make([]domain.TransitionRecord, 0, len(vals))
	for _, val := range vals {
		var rec domain.TransitionRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Close closes the underlying client.
func (j *Journal) Close() error {
	return j.client.Close()
}
