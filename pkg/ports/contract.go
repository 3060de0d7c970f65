package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// RunJournalContract runs a suite of tests verifying that a Journal
// implementation adheres to the interface contract. The journal must be
// empty when the suite starts.
func RunJournalContract(t *testing.T, j Journal) {
	ctx := context.Background()

	recs := []domain.TransitionRecord{
		{From: 0, Msg: 0, To: 1},
		{From: 1, Msg: 1, To: 2},
		{From: 2, Msg: 0, To: 0},
	}

	t.Run("Empty Tail", func(t *testing.T) {
		got, err := j.Tail(ctx, 0)
		require.NoError(t, err, "Tail on an empty journal should not fail")
		assert.Empty(t, got)
	})

	t.Run("Append and Tail", func(t *testing.T) {
		for _, rec := range recs {
			require.NoError(t, j.Append(ctx, rec), "Append should not fail")
		}

		got, err := j.Tail(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, recs, got, "Tail(0) should return every record in append order")
	})

	t.Run("Tail Limit", func(t *testing.T) {
		got, err := j.Tail(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, recs[1:], got, "Tail(n) should return the n most recent records, oldest first")
	})

	t.Run("Tail Overshoot", func(t *testing.T) {
		got, err := j.Tail(ctx, len(recs)+10)
		require.NoError(t, err)
		assert.Equal(t, recs, got, "a limit past the log length should return the whole log")
	})
}
