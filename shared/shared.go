package shared

import (
	"github.com/wippyai/refkit"
	"github.com/wippyai/refkit/errors"
)

// ErrDangling is returned by FromWeak when the source weak handle has
// expired. Match with errors.Is.
var ErrDangling = errors.DanglingWeak()

// Ptr is a strong-ownership handle to a reference-counted value.
//
// The zero value is an empty handle. Handles are copied with Clone, not by
// assignment: a plain Go copy of a Ptr produces two handles backed by one
// reference, and releasing both double-counts. Every non-empty handle must
// be released exactly once.
//
// The observed pointer may differ from the value the control block owns;
// see Alias.
type Ptr[T any] struct {
	ptr   *T
	block controlBlock
}

// New takes ownership of ptr and returns a handle with a strong count of
// one, using the default deletion policy. A nil ptr yields an empty handle.
//
// The caller must not release ptr independently afterwards.
func New[T any](ptr *T) Ptr[T] {
	return NewWithDeleter(ptr, refkit.DefaultDeleter[T]())
}

// NewWithDeleter is New with an explicit deletion policy. The policy is
// stored as-is and invoked with ptr when the last owner releases.
func NewWithDeleter[T any](ptr *T, del refkit.Deleter[T]) Ptr[T] {
	if ptr == nil {
		return Ptr[T]{}
	}
	return Ptr[T]{ptr: ptr, block: newPtrBlock(ptr, del)}
}

// Alias returns a handle that shares other's control block but observes a
// different pointer, typically a field of the managed value or an
// interface view of it. The aliased handle keeps the whole managed value
// alive; releasing other first does not invalidate the alias.
func Alias[T, U any](other Ptr[U], ptr *T) Ptr[T] {
	if other.block != nil {
		retain(other.block)
	}
	return Ptr[T]{ptr: ptr, block: other.block}
}

// FromWeak promotes a weak handle into a strong one. It fails with
// ErrDangling if the value is already gone; on failure neither the source
// nor any counter is touched.
func FromWeak[T any](w Weak[T]) (Ptr[T], error) {
	if w.Expired() {
		return Ptr[T]{}, ErrDangling
	}
	retain(w.block)
	return Ptr[T]{ptr: w.ptr, block: w.block}, nil
}

// Clone returns a new handle sharing ownership with p. Empty handles
// clone to empty handles.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.block != nil {
		retain(p.block)
	}
	return p
}

// Move transfers p's reference into the returned handle, leaving p empty.
// No counter changes.
func (p *Ptr[T]) Move() Ptr[T] {
	out := Ptr[T]{ptr: p.ptr, block: p.block}
	p.ptr, p.block = nil, nil
	return out
}

// Assign replaces p's reference with a clone of other, releasing the
// prior reference. Built as clone-then-swap, so p is untouched until the
// new reference fully exists; self-assignment is a no-op on the counters.
func (p *Ptr[T]) Assign(other Ptr[T]) {
	tmp := other.Clone()
	tmp.Swap(p)
	tmp.Release()
}

// AssignMove moves other's reference into p, releasing p's prior
// reference and leaving other empty. Self-move leaves p valid.
func (p *Ptr[T]) AssignMove(other *Ptr[T]) {
	tmp := other.Move()
	tmp.Swap(p)
	tmp.Release()
}

// Release drops p's strong reference and empties the handle. When the
// last owner releases, the deletion policy runs against the managed
// value; when no owner or observer remains, the control block dies.
// Releasing an empty handle is a no-op, so Release is safe to defer.
func (p *Ptr[T]) Release() {
	b := p.block
	p.ptr, p.block = nil, nil
	if b != nil {
		releaseStrong(b)
	}
}

// Reset releases the current reference, leaving p empty.
func (p *Ptr[T]) Reset() {
	var empty Ptr[T]
	empty.Swap(p)
	empty.Release()
}

// ResetTo releases the current reference and takes ownership of ptr with
// the default deletion policy.
func (p *Ptr[T]) ResetTo(ptr *T) {
	tmp := New(ptr)
	tmp.Swap(p)
	tmp.Release()
}

// Swap exchanges the references of p and other. No counter changes.
func (p *Ptr[T]) Swap(other *Ptr[T]) {
	p.ptr, other.ptr = other.ptr, p.ptr
	p.block, other.block = other.block, p.block
}

// Get returns the observed pointer, nil for an empty handle.
func (p Ptr[T]) Get() *T {
	return p.ptr
}

// Deref returns the observed value. Dereferencing an empty handle is a
// caller bug and panics.
func (p Ptr[T]) Deref() T {
	return *p.ptr
}

// UseCount returns the current strong count, 0 for an empty handle.
// The count includes p itself.
func (p Ptr[T]) UseCount() int {
	if p.block == nil {
		return 0
	}
	return p.block.counts().strong
}

// Valid reports whether the observed pointer is non-nil.
func (p Ptr[T]) Valid() bool {
	return p.ptr != nil
}

// Equal reports whether two handles observe the same pointer. Aliased
// handles over different blocks compare by what they point at, not by
// block identity.
func (p Ptr[T]) Equal(other Ptr[T]) bool {
	return p.ptr == other.ptr
}
