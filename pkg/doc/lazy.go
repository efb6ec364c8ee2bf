package doc

import (
	"sync"
	"sync/atomic"
)

// Lazy is a memoized deferred computation. The recipe runs on the first
// call to Force; every later call returns the cached value. A Lazy may be
// shared between goroutines.
type Lazy[T any] struct {
	once   sync.Once
	forced atomic.Bool
	recipe func() T
	value  T
}

// NewLazy wraps recipe in a Lazy without running it.
func NewLazy[T any](recipe func() T) *Lazy[T] {
	return &Lazy[T]{recipe: recipe}
}

// Value returns an already evaluated Lazy holding v.
func Value[T any](v T) *Lazy[T] {
	l := &Lazy[T]{value: v}
	l.once.Do(func() {})
	l.forced.Store(true)
	return l
}

// Force evaluates the recipe once and returns its result.
func (l *Lazy[T]) Force() T {
	l.once.Do(func() {
		l.value = l.recipe()
		l.recipe = nil
		l.forced.Store(true)
	})
	return l.value
}

// Forced reports whether the value has been computed.
func (l *Lazy[T]) Forced() bool {
	return l.forced.Load()
}
