// Package bounded provides a fixed-capacity list. It stands in for the
// engine's statically sized entity and contact arrays: pushing past the
// capacity is an error instead of a reallocation.
package bounded

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var ErrCapacityExceeded = errors.New("bounded: capacity exceeded")

type List[T any] struct {
	items    []T
	capacity int
}

func New[T any](capacity int) *List[T] {
	if capacity < 0 {
		panic("bounded: negative capacity")
	}
	return &List[T]{items: make([]T, 0, capacity), capacity: capacity}
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) Cap() int { return l.capacity }

func (l *List[T]) Full() bool { return len(l.items) >= l.capacity }

func (l *List[T]) Push(item T) error {
	if l.Full() {
		return fmt.Errorf("%w (capacity %d)", ErrCapacityExceeded, l.capacity)
	}
	l.items = append(l.items, item)
	return nil
}

// At returns a pointer to the i-th element. The pointer is invalidated by the
// next Erase or Clear.
func (l *List[T]) At(i int) *T {
	return &l.items[i]
}

// Items exposes the backing slice; callers may mutate elements in place but
// must not append to it.
func (l *List[T]) Items() []T {
	return l.items
}

func (l *List[T]) Index(match func(*T) bool) int {
	return slices.IndexFunc(l.items, func(item T) bool { return match(&item) })
}

func (l *List[T]) Find(match func(*T) bool) *T {
	i := l.Index(match)
	if i < 0 {
		return nil
	}
	return &l.items[i]
}

// Erase removes the first element matching and keeps the order of the rest.
func (l *List[T]) Erase(match func(*T) bool) bool {
	i := l.Index(match)
	if i < 0 {
		return false
	}
	last := len(l.items) - 1
	l.items = slices.Delete(l.items, i, i+1)
	var zero T
	l.items[:last+1][last] = zero
	return true
}

func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// Clone returns an independent copy with the same capacity.
func (l *List[T]) Clone() *List[T] {
	c := New[T](l.capacity)
	c.items = append(c.items, l.items...)
	return c
}
