package shared

import (
	"github.com/wippyai/refkit"
)

// Make performs a combined allocation: one block holds both the
// bookkeeping and the storage for value. The returned handle observes the
// embedded storage with a strong count of one and the default deletion
// policy. This is the preferred construction route, saving an allocation
// over New.
//
// If T embeds Self[T], the new handle is wired into it so the value can
// hand out references to itself.
func Make[T any](value T) Ptr[T] {
	blk := newInlineBlock(refkit.DefaultDeleter[T]())
	blk.value = value
	blk.commit()
	out := Ptr[T]{ptr: &blk.value, block: blk}
	bindSelf(out)
	return out
}

// MakeFunc is Make for values that are constructed in place and may fail.
// init receives a pointer to zeroed storage inside the block. On error
// the block is discarded without running the deletion policy, and the
// error propagates to the caller unmodified.
func MakeFunc[T any](init func(*T) error) (Ptr[T], error) {
	blk := newInlineBlock(refkit.DefaultDeleter[T]())
	if err := init(&blk.value); err != nil {
		return Ptr[T]{}, err
	}
	blk.commit()
	out := Ptr[T]{ptr: &blk.value, block: blk}
	bindSelf(out)
	return out, nil
}

func bindSelf[T any](p Ptr[T]) {
	if b, ok := any(p.ptr).(selfBinder[T]); ok {
		b.bindSelf(p)
	}
}

type selfBinder[T any] interface {
	bindSelf(Ptr[T])
}

// Self is an embeddable mixin that lets a managed value produce handles
// to itself from inside its own methods. The combined-allocation path
// wires it up; values constructed any other way stay unbound and
// SharedFromSelf reports ErrDangling.
//
//	type Session struct {
//	    shared.Self[Session]
//	    ...
//	}
//
//	p := shared.Make(Session{...})
//	// inside a Session method:
//	me, err := s.SharedFromSelf()
type Self[T any] struct {
	// Unowned back-reference: it shares the owner's block without
	// counting, so the value's own handle never keeps it alive.
	self Ptr[T]
}

func (s *Self[T]) bindSelf(p Ptr[T]) {
	s.self = Ptr[T]{ptr: p.ptr, block: p.block}
}

// SharedFromSelf returns a new strong handle sharing the block of the
// value's real owner. Fails with ErrDangling if the value was never
// bound or all owners are gone.
func (s *Self[T]) SharedFromSelf() (Ptr[T], error) {
	if s.self.block == nil || s.self.block.counts().strong == 0 {
		return Ptr[T]{}, ErrDangling
	}
	return s.self.Clone(), nil
}

// WeakFromSelf returns a weak handle observing the value's owner block.
// Empty if the value was never bound.
func (s *Self[T]) WeakFromSelf() Weak[T] {
	if s.self.block == nil {
		return Weak[T]{}
	}
	return NewWeak(s.self)
}
