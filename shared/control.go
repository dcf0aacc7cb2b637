package shared

import (
	"sync/atomic"

	"github.com/wippyai/refkit"
)

// controlBlock is the bookkeeping object shared by every handle to one
// managed value. It owns both counts and knows how to release the value
// for its storage strategy.
type controlBlock interface {
	counts() *refCounts
	releaseObject()
}

// refCounts holds the two lifetime counters. Plain ints: a block must be
// mutated from one goroutine at a time (see package doc).
type refCounts struct {
	id     uint64
	strong int
	weak   int
	dead   bool
}

// Block IDs are handed out globally, so the generator is the one piece of
// state that may be touched from multiple goroutines.
var blockIDs atomic.Uint64

func newCounts() refCounts {
	return refCounts{id: blockIDs.Add(1)}
}

// ptrBlock manages a value that was allocated separately and handed over
// as a raw pointer. Releasing the object runs the deleter against that
// pointer and drops it.
type ptrBlock[T any] struct {
	refs refCounts
	ptr  *T
	del  refkit.Deleter[T]
}

func newPtrBlock[T any](ptr *T, del refkit.Deleter[T]) *ptrBlock[T] {
	b := &ptrBlock[T]{refs: newCounts(), ptr: ptr, del: del}
	b.refs.strong = 1
	traceAllocated(&b.refs, false)
	return b
}

func (b *ptrBlock[T]) counts() *refCounts { return &b.refs }

func (b *ptrBlock[T]) releaseObject() {
	if b.ptr == nil {
		return
	}
	if b.del != nil {
		b.del(b.ptr)
	}
	b.ptr = nil
}

// inlineBlock embeds the value in the block itself: one allocation for
// both the bookkeeping and the storage. Releasing the object runs the
// deleter against the embedded storage; the storage lives as long as the
// block does.
type inlineBlock[T any] struct {
	refs     refCounts
	del      refkit.Deleter[T]
	released bool
	value    T
}

func newInlineBlock[T any](del refkit.Deleter[T]) *inlineBlock[T] {
	return &inlineBlock[T]{refs: newCounts(), del: del}
}

// commit publishes the block once in-place construction has succeeded.
// An uncommitted block is discarded without running the deleter.
func (b *inlineBlock[T]) commit() {
	b.refs.strong = 1
	traceAllocated(&b.refs, true)
}

func (b *inlineBlock[T]) counts() *refCounts { return &b.refs }

func (b *inlineBlock[T]) releaseObject() {
	if b.released {
		return
	}
	b.released = true
	if b.del != nil {
		b.del(&b.value)
	}
}

// retain adds a strong owner. Caller guarantees the block is alive.
func retain(b controlBlock) {
	c := b.counts()
	c.strong++
	traceCounts(c)
}

// retainWeak adds a weak observer.
func retainWeak(b controlBlock) {
	c := b.counts()
	c.weak++
	traceCounts(c)
}

// releaseStrong drops a strong owner and applies the two-phase release
// rule: the managed object goes when the strong count hits zero, the
// block goes when both counts do.
func releaseStrong(b controlBlock) {
	c := b.counts()
	c.strong--
	traceCounts(c)
	if c.strong == 0 {
		b.releaseObject()
		traceReleased(c)
	}
	if c.strong+c.weak == 0 {
		freeBlock(c)
	}
}

// releaseWeak drops a weak observer. Never touches the managed object.
func releaseWeak(b controlBlock) {
	c := b.counts()
	c.weak--
	traceCounts(c)
	if c.strong+c.weak == 0 {
		freeBlock(c)
	}
}

// freeBlock marks the block dead exactly once. The storage itself is
// reclaimed by the garbage collector once the last handle lets go of it.
func freeBlock(c *refCounts) {
	if c.dead {
		return
	}
	c.dead = true
	traceFreed(c)
}
