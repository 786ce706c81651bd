package queue

import (
	"log/slog"

	"cyclic-queue/lib/ds/internal"
)

type ringNode[T any] struct {
	value T
	next  *ringNode[T]

	// Position of the node in its ring's storage.
	// Fixed once the ring is linked.
	idx uint
}

// Ring is a bounded FIFO queue over a closed ring of preallocated nodes.
// Elements are written at head and read at tail, both following the next links.
//
// The links are fixed once the ring is built; only head and tail move.
// Head and tail point into the ring's own storage, so they are never
// shared with another ring. Copies translate them by slot position.
type Ring[T any] struct {
	nodes      []ringNode[T]
	head, tail *ringNode[T]

	count uint

	opts   Options
	logger *slog.Logger
}

var _ Bounded[int] = (*Ring[int])(nil)

func NewRing[T any](size uint) (*Ring[T], error) {
	return NewRingWithOptions[T](size, Options{})
}

func NewRingWithOptions[T any](size uint, opts Options) (*Ring[T], error) {
	if err := validateCapacity(size); err != nil {
		return nil, err
	}

	return newRing[T](size, opts), nil
}

func newRing[T any](size uint, opts Options) *Ring[T] {
	r := &Ring[T]{
		nodes:  make([]ringNode[T], size),
		opts:   opts,
		logger: opts.logger(),
	}
	r.link()
	r.head, r.tail = r.start(), r.start()

	return r
}

// link wires node i to node i+1 and the last node back to the first.
func (r *Ring[T]) link() {
	last := uint(len(r.nodes)) - 1
	for i := uint(0); i < last; i++ {
		r.nodes[i].idx = i
		r.nodes[i].next = &r.nodes[i+1]
	}
	r.nodes[last].idx = last
	r.nodes[last].next = &r.nodes[0]
}

func (r *Ring[T]) start() *ringNode[T] { return &r.nodes[0] }

// Push writes an element at head.
// If the ring is full, it returns [ErrQueueFull].
func (r *Ring[T]) Push(v T) error {
	if r.Full() {
		r.logger.Debug("rejected push", slog.Uint64("capacity", uint64(r.Cap())))
		return ErrQueueFull
	}

	r.head.value = v
	r.head = r.head.next
	r.count++

	return nil
}

// Pop removes and returns the element at tail.
// If the ring is empty, it returns [ErrQueueEmpty].
func (r *Ring[T]) Pop() (T, error) {
	if r.Empty() {
		r.logger.Debug("rejected pop", slog.Uint64("capacity", uint64(r.Cap())))
		return internal.Zero[T](), ErrQueueEmpty
	}

	v := r.tail.value
	r.tail.value = internal.Zero[T]()

	r.tail = r.tail.next
	r.count--

	return v, nil
}

// Peek returns the element at tail without removing it.
// If the ring is empty, it returns [ErrQueueEmpty].
func (r *Ring[T]) Peek() (T, error) {
	if r.Empty() {
		return internal.Zero[T](), ErrQueueEmpty
	}

	return r.tail.value, nil
}

// Len returns the number of elements in the ring.
func (r *Ring[T]) Len() uint { return r.count }

// Cap returns the number of nodes in the ring.
func (r *Ring[T]) Cap() uint { return uint(len(r.nodes)) }

func (r *Ring[T]) Full() bool  { return r.count == r.Cap() }
func (r *Ring[T]) Empty() bool { return r.count == 0 }

// Clear empties the ring, releasing every element it holds,
// and moves head and tail back to the first node.
// See [Options.LegacyClear] for the older behavior.
func (r *Ring[T]) Clear() {
	if r.opts.LegacyClear {
		if r.count > 1 {
			r.logger.Warn("legacy clear left live slots unreleased",
				slog.Uint64("slots", uint64(r.count-1)))
		}
		r.tail.value = internal.Zero[T]()
	} else {
		n := r.tail
		for i := uint(0); i < r.count; i++ {
			n.value = internal.Zero[T]()
			n = n.next
		}
	}

	r.reset()
}

func (r *Ring[T]) reset() {
	r.head, r.tail = r.start(), r.start()
	r.count = 0
}

// Clone returns an independent copy of r with its own nodes.
func (r *Ring[T]) Clone() *Ring[T] {
	c := newRing[T](r.Cap(), r.opts)
	c.copyState(r)
	return c
}

// CopyFrom replaces the contents of r with a copy of src.
// Both rings must have the same capacity.
func (r *Ring[T]) CopyFrom(src *Ring[T]) error {
	if r == src {
		return nil
	}
	if err := checkSameCapacity(r.Cap(), src.Cap()); err != nil {
		return err
	}

	r.copyState(src)
	return nil
}

// Move returns a new ring holding the contents of r and leaves r empty.
func (r *Ring[T]) Move() *Ring[T] {
	m := newRing[T](r.Cap(), r.opts)
	m.moveState(r)
	return m
}

// MoveFrom transfers the contents of src into r and leaves src empty.
// Both rings must have the same capacity.
func (r *Ring[T]) MoveFrom(src *Ring[T]) error {
	if r == src {
		return nil
	}
	if err := checkSameCapacity(r.Cap(), src.Cap()); err != nil {
		return err
	}

	r.moveState(src)
	return nil
}

// copyState copies values slot by slot, then rebuilds head and tail from
// their slot positions in src. Taking src's pointers would alias its nodes.
func (r *Ring[T]) copyState(src *Ring[T]) {
	for i := range src.nodes {
		r.nodes[i].value = src.nodes[i].value
	}
	r.rebase(src)
}

func (r *Ring[T]) moveState(src *Ring[T]) {
	for i := range src.nodes {
		r.nodes[i].value = src.nodes[i].value
		src.nodes[i].value = internal.Zero[T]()
	}
	r.rebase(src)

	src.reset()
}

func (r *Ring[T]) rebase(src *Ring[T]) {
	r.link()

	r.head = &r.nodes[src.head.idx]
	r.tail = &r.nodes[src.tail.idx]
	r.count = src.count
}
