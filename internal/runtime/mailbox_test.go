package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailbox_FIFO(t *testing.T) {
	var mb mailbox

	_, ok := mb.peek()
	assert.False(t, ok, "empty mailbox should have nothing to peek")

	mb.push(1, "a")
	mb.push(2, "b")
	mb.push(3, nil)
	assert.Equal(t, 3, mb.len())

	env, ok := mb.peek()
	assert.True(t, ok)
	assert.Equal(t, envelope{msg: 1, payload: "a"}, env)

	mb.consume()
	env, _ = mb.peek()
	assert.Equal(t, envelope{msg: 2, payload: "b"}, env)
	assert.Equal(t, 2, mb.len())

	mb.consume()
	mb.consume()
	assert.Equal(t, 0, mb.len())
	_, ok = mb.peek()
	assert.False(t, ok)
}

func TestMailbox_RecyclesAfterDrain(t *testing.T) {
	var mb mailbox
	mb.push(1, nil)
	mb.push(2, nil)
	mb.consume()
	mb.consume()

	// Fully drained, so the next push starts at the front again.
	mb.push(3, nil)
	assert.Equal(t, 0, mb.head)
	assert.Len(t, mb.items, 1)
}

func TestMailbox_Reset(t *testing.T) {
	var mb mailbox
	mb.push(1, "payload")
	mb.push(2, "payload")
	mb.reset()

	assert.Equal(t, 0, mb.len())
	assert.Nil(t, mb.items)
	assert.Equal(t, 0, mb.head)
}
