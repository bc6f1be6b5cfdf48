package feed

import "sync"

// Latest is a single-slot mailbox: publishing replaces any value the
// reader has not taken yet, so a slow reader always sees the newest one.
type Latest[T any] struct {
	ch chan T

	mu   sync.RWMutex
	last T
	set  bool
}

// NewLatest returns an empty mailbox.
func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{ch: make(chan T, 1)}
}

// Publish stores v and makes it the next value received from C. It never
// blocks.
func (l *Latest[T]) Publish(v T) {
	l.mu.Lock()
	l.last, l.set = v, true
	l.mu.Unlock()

	for {
		select {
		case l.ch <- v:
			return
		default:
		}
		// Drop the stale value and retry.
		select {
		case <-l.ch:
		default:
		}
	}
}

// C yields published values, newest first, skipping superseded ones.
func (l *Latest[T]) C() <-chan T {
	return l.ch
}

// Load returns the most recently published value.
func (l *Latest[T]) Load() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last, l.set
}
