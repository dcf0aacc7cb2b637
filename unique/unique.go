package unique

import (
	"github.com/wippyai/refkit"
)

// Unique is a single-owner handle. There is no sharing and no counting:
// whoever holds the handle owns the value, and the deletion policy runs
// when the owner releases or is replaced. Ownership moves with Move or
// Detach, never by plain Go copy.
//
// The zero value is an empty handle.
type Unique[T any] struct {
	ptr *T
	del refkit.Deleter[T]
}

// New takes ownership of ptr with the default deletion policy. A nil ptr
// yields an empty handle.
func New[T any](ptr *T) Unique[T] {
	return NewWithDeleter(ptr, refkit.DefaultDeleter[T]())
}

// NewWithDeleter is New with an explicit deletion policy. The policy is
// stored as-is and invoked with ptr exactly once, when ownership ends.
func NewWithDeleter[T any](ptr *T, del refkit.Deleter[T]) Unique[T] {
	if ptr == nil {
		return Unique[T]{del: del}
	}
	return Unique[T]{ptr: ptr, del: del}
}

// Move transfers ownership into the returned handle, leaving u empty.
// The deletion policy moves with the value.
func (u *Unique[T]) Move() Unique[T] {
	out := Unique[T]{ptr: u.ptr, del: u.del}
	u.ptr = nil
	return out
}

// Assign moves other's value into u, releasing u's prior value first.
// Self-assignment leaves u valid and unchanged.
func (u *Unique[T]) Assign(other *Unique[T]) {
	if u == other {
		return
	}
	tmp := other.Move()
	tmp.Swap(u)
	tmp.Release()
}

// Detach relinquishes ownership without running the deletion policy and
// returns the raw pointer. The caller becomes responsible for cleanup.
func (u *Unique[T]) Detach() *T {
	ptr := u.ptr
	u.ptr = nil
	return ptr
}

// Release runs the deletion policy against the owned value and empties
// the handle. Releasing an empty handle is a no-op, so Release is safe
// to defer.
func (u *Unique[T]) Release() {
	ptr := u.ptr
	u.ptr = nil
	if ptr != nil && u.del != nil {
		u.del(ptr)
	}
}

// Reset releases the owned value, leaving u empty.
func (u *Unique[T]) Reset() {
	u.Release()
}

// ResetTo releases the owned value and takes ownership of ptr under the
// same deletion policy.
func (u *Unique[T]) ResetTo(ptr *T) {
	old := u.ptr
	u.ptr = ptr
	if old != nil && u.del != nil {
		u.del(old)
	}
}

// Swap exchanges values and deletion policies of u and other.
func (u *Unique[T]) Swap(other *Unique[T]) {
	u.ptr, other.ptr = other.ptr, u.ptr
	u.del, other.del = other.del, u.del
}

// Get returns the owned pointer, nil for an empty handle.
func (u Unique[T]) Get() *T {
	return u.ptr
}

// Deleter returns the handle's deletion policy.
func (u Unique[T]) Deleter() refkit.Deleter[T] {
	return u.del
}

// Deref returns the owned value. Dereferencing an empty handle is a
// caller bug and panics.
func (u Unique[T]) Deref() T {
	return *u.ptr
}

// Valid reports whether the handle owns a value.
func (u Unique[T]) Valid() bool {
	return u.ptr != nil
}
