package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchet-dev/ratchet/pkg/adapters/memory"
	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/ports"
)

func TestMemoryJournal_Contract(t *testing.T) {
	ports.RunJournalContract(t, memory.NewJournal())
}

func TestMemoryJournal_TailIsolation(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal()
	require.NoError(t, j.Append(ctx, domain.TransitionRecord{From: 0, Msg: 1, To: 2}))

	got, err := j.Tail(ctx, 0)
	require.NoError(t, err)
	got[0].To = 99

	again, err := j.Tail(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StateID(2), again[0].To, "mutating a Tail result must not touch the journal")
}

func TestMemoryJournal_Reset(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal()
	require.NoError(t, j.Append(ctx, domain.TransitionRecord{}))
	assert.Equal(t, 1, j.Len())

	j.Reset()
	assert.Equal(t, 0, j.Len())

	got, err := j.Tail(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
