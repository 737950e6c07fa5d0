// Package oracle maintains bounded price-sample histories for oracle feeds,
// built on the account subscriber core.
package oracle

import "fmt"

// Stash is a fixed-capacity FIFO over the most recently enqueued values.
// Once full, each enqueue evicts the oldest element. Stash is not
// synchronized; Client guards its stash with its own lock.
type Stash[T any] struct {
	buf  []T
	head int
	size int
}

// NewStash builds a stash. Capacity must be positive.
func NewStash[T any](capacity int) (*Stash[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("stash capacity must be positive: %d", capacity)
	}
	return &Stash[T]{buf: make([]T, capacity)}, nil
}

// Enqueue appends a value, evicting the oldest when at capacity.
func (s *Stash[T]) Enqueue(v T) {
	s.buf[s.head] = v
	s.head = (s.head + 1) % len(s.buf)
	if s.size < len(s.buf) {
		s.size++
	}
}

// Size returns how many values are currently held.
func (s *Stash[T]) Size() int {
	return s.size
}

// Capacity returns the fixed capacity.
func (s *Stash[T]) Capacity() int {
	return len(s.buf)
}

// Last returns up to n of the most recently enqueued values, most recent
// first. Asking for more than Size is not an error: it returns what is
// available, which may be nothing.
func (s *Stash[T]) Last(n int) []T {
	if n > s.size {
		n = s.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]T, 0, n)
	idx := s.head - 1
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx += len(s.buf)
		}
		out = append(out, s.buf[idx])
		idx--
	}
	return out
}
