package queue

import (
	"log/slog"

	"github.com/pkg/errors"
)

var (
	ErrQueueEmpty = errors.New("queue is empty")
	ErrQueueFull  = errors.New("queue is full")

	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrCapacityMismatch = errors.New("queues have different capacity")
)

// Bounded is a fixed-capacity FIFO queue.
// A failed Push or Pop leaves the queue untouched.
type Bounded[T any] interface {
	Push(v T) error
	Pop() (T, error)
	Peek() (T, error)

	Len() uint
	Cap() uint
	Full() bool
	Empty() bool

	Clear()
}

type Options struct {
	// Logger receives debug records for rejected operations.
	// Defaults to a logger which discards everything.
	Logger *slog.Logger

	// LegacyClear makes Clear release only the slot at the front of the queue
	// instead of every live slot. The remaining values stay reachable from
	// the backing storage until they are overwritten by later pushes.
	//
	// NOTE: This reproduces a defect of older queues and exists only for
	// callers which depend on it.
	LegacyClear bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func validateCapacity(size uint) error {
	if size == 0 {
		return errors.Wrapf(ErrInvalidCapacity, "got %d", size)
	}
	return nil
}

func checkSameCapacity(dst, src uint) error {
	if dst != src {
		return errors.Wrapf(ErrCapacityMismatch, "assigning capacity %d to %d", src, dst)
	}
	return nil
}
