package queue

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularNew(t *testing.T) {
	size := uint(5)
	q, err := NewCircular[int](size)
	require.NoError(t, err)

	assert.Len(t, q.queue, int(size))
	assert.Equal(t, uint(0), q.head)
	assert.Equal(t, uint(0), q.tail)
	assert.Equal(t, uint(0), q.count)
}

func TestCircularPushPop(t *testing.T) {
	q, err := NewCircular[string](2)
	require.NoError(t, err)

	assert.NoError(t, q.Push("hello"))
	assert.Equal(t, "hello", q.queue[0])
	assert.Equal(t, uint(1), q.head)

	assert.NoError(t, q.Push("world"))
	assert.Equal(t, uint(0), q.head) // wrapped

	v, err := q.Pop()
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, uint(1), q.tail)

	// Popped slot no longer holds the value.
	assert.Equal(t, "", q.queue[0])
}

func TestCircularWrapAround(t *testing.T) {
	q, err := NewCircular[int](4)
	require.NoError(t, err)

	assert.NoError(t, q.Push(1))
	assert.NoError(t, q.Push(2))
	_, _ = q.Pop() // tail moves
	assert.NoError(t, q.Push(3))
	assert.NoError(t, q.Push(4))
	assert.NoError(t, q.Push(5)) // head wraps around

	assert.Equal(t, uint(4), q.Len())
	assert.Equal(t, []int{5, 2, 3, 4}, q.queue)

	for _, expected := range []int{2, 3, 4, 5} {
		v, err := q.Pop()
		assert.NoError(t, err)
		assert.Equal(t, expected, v)
	}

	assert.Equal(t, uint(0), q.Len())
	assert.Equal(t, q.head, q.tail)
}

func TestCircularFailedOpsKeepState(t *testing.T) {
	q, err := NewCircular[int](2)
	require.NoError(t, err)

	_, err = q.Pop()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	assert.Equal(t, uint(0), q.tail)

	assert.NoError(t, q.Push(1))
	assert.NoError(t, q.Push(2))
	head, tail := q.head, q.tail

	assert.ErrorIs(t, q.Push(3), ErrQueueFull)
	assert.Equal(t, head, q.head)
	assert.Equal(t, tail, q.tail)
	assert.Equal(t, []int{1, 2}, q.queue)
}

func TestCircularClear(t *testing.T) {
	q, err := NewCircular[string](4)
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		assert.NoError(t, q.Push(v))
	}
	_, _ = q.Pop()

	q.Clear()

	assert.Equal(t, []string{"", "", "", ""}, q.queue)
	assert.Equal(t, uint(0), q.head)
	assert.Equal(t, uint(0), q.tail)
	assert.True(t, q.Empty())
}

func TestCircularClearLegacy(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	q, err := NewCircularWithOptions[string](4, Options{
		Logger:      slog.New(slog.NewTextHandler(buf, nil)),
		LegacyClear: true,
	})
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c"} {
		assert.NoError(t, q.Push(v))
	}
	_, _ = q.Pop()

	q.Clear()

	// Only the front slot is released, "c" is left behind.
	assert.Equal(t, []string{"", "", "c", ""}, q.queue)
	assert.True(t, q.Empty())
	assert.Contains(t, buf.String(), "legacy clear")

	// Stale slot gets overwritten.
	for _, v := range []string{"w", "x", "y"} {
		assert.NoError(t, q.Push(v))
	}
	assert.Equal(t, []string{"w", "x", "y", ""}, q.queue)
}

func TestCircularCloneStorage(t *testing.T) {
	q, err := NewCircular[int](3)
	require.NoError(t, err)

	assert.NoError(t, q.Push(1))
	assert.NoError(t, q.Push(2))
	_, _ = q.Pop()

	c := q.Clone()

	// Storage order and indices are copied as they are.
	assert.Equal(t, q.queue, c.queue)
	assert.Equal(t, q.head, c.head)
	assert.Equal(t, q.tail, c.tail)
	assert.Equal(t, q.count, c.count)

	c.queue[1] = 42
	assert.Equal(t, 2, q.queue[1])
}

func TestCircularMoveReleasesSource(t *testing.T) {
	q, err := NewCircular[*int](2)
	require.NoError(t, err)

	v := 1
	assert.NoError(t, q.Push(&v))
	assert.NoError(t, q.Push(&v))

	m := q.Move()

	assert.Equal(t, []*int{nil, nil}, q.queue)
	assert.Equal(t, uint(0), q.head)
	assert.Equal(t, uint(0), q.tail)
	assert.True(t, m.Full())

	got, err := m.Pop()
	assert.NoError(t, err)
	assert.Same(t, &v, got)
}
