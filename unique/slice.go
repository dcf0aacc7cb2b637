package unique

import (
	"github.com/wippyai/refkit"
)

// Slice is the group-ownership variant of Unique: it owns a slice of
// values and applies the deletion policy to every element on release.
type Slice[T any] struct {
	items []T
	del   refkit.Deleter[T]
}

// NewSlice takes ownership of items with the default per-element policy.
func NewSlice[T any](items []T) Slice[T] {
	return NewSliceWithDeleter(items, refkit.DefaultDeleter[T]())
}

// NewSliceWithDeleter is NewSlice with an explicit per-element policy.
func NewSliceWithDeleter[T any](items []T, del refkit.Deleter[T]) Slice[T] {
	return Slice[T]{items: items, del: del}
}

// Move transfers ownership into the returned handle, leaving s empty.
func (s *Slice[T]) Move() Slice[T] {
	out := Slice[T]{items: s.items, del: s.del}
	s.items = nil
	return out
}

// Detach relinquishes ownership without running the deletion policy.
func (s *Slice[T]) Detach() []T {
	items := s.items
	s.items = nil
	return items
}

// Release runs the deletion policy against every element, in order, and
// empties the handle. Safe to call on an empty handle.
func (s *Slice[T]) Release() {
	items := s.items
	s.items = nil
	if s.del == nil {
		return
	}
	for i := range items {
		s.del(&items[i])
	}
}

// Swap exchanges contents and deletion policies of s and other.
func (s *Slice[T]) Swap(other *Slice[T]) {
	s.items, other.items = other.items, s.items
	s.del, other.del = other.del, s.del
}

// At returns a pointer to the i-th owned element. Indexing an empty
// handle or out of range panics.
func (s Slice[T]) At(i int) *T {
	return &s.items[i]
}

// Len returns the number of owned elements.
func (s Slice[T]) Len() int {
	return len(s.items)
}

// Valid reports whether the handle owns any elements.
func (s Slice[T]) Valid() bool {
	return s.items != nil
}
