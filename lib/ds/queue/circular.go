package queue

import (
	"log/slog"

	"cyclic-queue/lib/ds/internal"
)

// Circular is a bounded FIFO queue over a fixed slice.
// Elements are pushed at head and popped from tail, both wrapping around the slice.
type Circular[T any] struct {
	queue      []T
	head, tail uint

	// count tells a full queue from an empty one since head == tail for both.
	count uint

	opts   Options
	logger *slog.Logger
}

var _ Bounded[int] = (*Circular[int])(nil)

func NewCircular[T any](size uint) (*Circular[T], error) {
	return NewCircularWithOptions[T](size, Options{})
}

func NewCircularWithOptions[T any](size uint, opts Options) (*Circular[T], error) {
	if err := validateCapacity(size); err != nil {
		return nil, err
	}

	return &Circular[T]{
		queue:  make([]T, size),
		opts:   opts,
		logger: opts.logger(),
	}, nil
}

// Push adds an element to the back of the queue.
// If the queue is full, it returns [ErrQueueFull].
func (q *Circular[T]) Push(v T) error {
	if q.Full() {
		q.logger.Debug("rejected push", slog.Uint64("capacity", uint64(q.Cap())))
		return ErrQueueFull
	}

	q.queue[q.head] = v
	q.head = q.advance(q.head)
	q.count++

	return nil
}

// Pop removes and returns the front element of the queue.
// If the queue is empty, it returns [ErrQueueEmpty].
func (q *Circular[T]) Pop() (T, error) {
	if q.Empty() {
		q.logger.Debug("rejected pop", slog.Uint64("capacity", uint64(q.Cap())))
		return internal.Zero[T](), ErrQueueEmpty
	}

	v := q.queue[q.tail]
	q.queue[q.tail] = internal.Zero[T]()

	q.tail = q.advance(q.tail)
	q.count--

	return v, nil
}

// Peek returns the front element without removing it.
// If the queue is empty, it returns [ErrQueueEmpty].
func (q *Circular[T]) Peek() (T, error) {
	if q.Empty() {
		return internal.Zero[T](), ErrQueueEmpty
	}

	return q.queue[q.tail], nil
}

// Len returns the number of elements in the queue.
func (q *Circular[T]) Len() uint { return q.count }

// Cap returns the fixed capacity of the queue.
func (q *Circular[T]) Cap() uint { return uint(len(q.queue)) }

func (q *Circular[T]) Full() bool  { return q.count == q.Cap() }
func (q *Circular[T]) Empty() bool { return q.count == 0 }

// Clear empties the queue, releasing every element it holds.
// See [Options.LegacyClear] for the older behavior.
func (q *Circular[T]) Clear() {
	if q.opts.LegacyClear {
		if q.count > 1 {
			q.logger.Warn("legacy clear left live slots unreleased",
				slog.Uint64("slots", uint64(q.count-1)))
		}
		q.queue[q.tail] = internal.Zero[T]()
	} else {
		for i, idx := uint(0), q.tail; i < q.count; i, idx = i+1, q.advance(idx) {
			q.queue[idx] = internal.Zero[T]()
		}
	}

	q.head, q.tail, q.count = 0, 0, 0
}

// Clone returns an independent copy of q.
func (q *Circular[T]) Clone() *Circular[T] {
	c := &Circular[T]{
		queue:  make([]T, len(q.queue)),
		opts:   q.opts,
		logger: q.logger,
	}
	c.copyState(q)
	return c
}

// CopyFrom replaces the contents of q with a copy of src.
// Both queues must have the same capacity.
func (q *Circular[T]) CopyFrom(src *Circular[T]) error {
	if q == src {
		return nil
	}
	if err := checkSameCapacity(q.Cap(), src.Cap()); err != nil {
		return err
	}

	q.copyState(src)
	return nil
}

// Move returns a new queue holding the contents of q and leaves q empty.
func (q *Circular[T]) Move() *Circular[T] {
	m := &Circular[T]{
		queue:  make([]T, len(q.queue)),
		opts:   q.opts,
		logger: q.logger,
	}
	m.moveState(q)
	return m
}

// MoveFrom transfers the contents of src into q and leaves src empty.
// Both queues must have the same capacity.
func (q *Circular[T]) MoveFrom(src *Circular[T]) error {
	if q == src {
		return nil
	}
	if err := checkSameCapacity(q.Cap(), src.Cap()); err != nil {
		return err
	}

	q.moveState(src)
	return nil
}

// Slots are copied in storage order and indices verbatim,
// as indices do not depend on which slice they point into.
func (q *Circular[T]) copyState(src *Circular[T]) {
	copy(q.queue, src.queue)
	q.head, q.tail, q.count = src.head, src.tail, src.count
}

func (q *Circular[T]) moveState(src *Circular[T]) {
	q.copyState(src)

	clear(src.queue)
	src.head, src.tail, src.count = 0, 0, 0
}

func (q *Circular[T]) advance(n uint) uint {
	return (n + 1) % uint(len(q.queue))
}
