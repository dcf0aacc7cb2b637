package shared

// Weak is a non-owning handle to a reference-counted value. It observes
// the value's liveness without extending it: the deletion policy can run
// while weak handles are still around, and they will report Expired.
//
// The zero value is an empty handle. Like Ptr, weak handles are copied
// with Clone and must be released exactly once.
type Weak[T any] struct {
	ptr   *T
	block controlBlock
}

// NewWeak captures a weak handle from a strong one. Empty in, empty out.
func NewWeak[T any](p Ptr[T]) Weak[T] {
	if p.block != nil {
		retainWeak(p.block)
	}
	return Weak[T]{ptr: p.ptr, block: p.block}
}

// Clone returns a new weak handle observing the same block.
func (w Weak[T]) Clone() Weak[T] {
	if w.block != nil {
		retainWeak(w.block)
	}
	return w
}

// Move transfers w's reference into the returned handle, leaving w empty.
func (w *Weak[T]) Move() Weak[T] {
	out := Weak[T]{ptr: w.ptr, block: w.block}
	w.ptr, w.block = nil, nil
	return out
}

// Assign replaces w's reference with a clone of other, releasing the
// prior reference. Clone-then-swap; self-assignment is counter-neutral.
func (w *Weak[T]) Assign(other Weak[T]) {
	tmp := other.Clone()
	tmp.Swap(w)
	tmp.Release()
}

// AssignMove moves other's reference into w, releasing w's prior
// reference and leaving other empty.
func (w *Weak[T]) AssignMove(other *Weak[T]) {
	tmp := other.Move()
	tmp.Swap(w)
	tmp.Release()
}

// AssignShared re-points w at the block p owns, releasing the prior
// reference.
func (w *Weak[T]) AssignShared(p Ptr[T]) {
	tmp := NewWeak(p)
	tmp.Swap(w)
	tmp.Release()
}

// Release drops w's weak reference and empties the handle. The managed
// value is never touched; the control block dies if this was the last
// reference of either kind.
func (w *Weak[T]) Release() {
	b := w.block
	w.ptr, w.block = nil, nil
	if b != nil {
		releaseWeak(b)
	}
}

// Reset releases the current reference, leaving w empty.
func (w *Weak[T]) Reset() {
	var empty Weak[T]
	empty.Swap(w)
	empty.Release()
}

// Swap exchanges the references of w and other. No counter changes.
func (w *Weak[T]) Swap(other *Weak[T]) {
	w.ptr, other.ptr = other.ptr, w.ptr
	w.block, other.block = other.block, w.block
}

// UseCount returns the current strong count of the observed block, 0 for
// an empty handle.
func (w Weak[T]) UseCount() int {
	if w.block == nil {
		return 0
	}
	return w.block.counts().strong
}

// Expired reports whether the managed value is gone (or was never there).
func (w Weak[T]) Expired() bool {
	return w.UseCount() == 0
}

// Lock promotes w into a strong handle if the value is still alive.
// Unlike FromWeak it never fails: expiry yields an empty Ptr instead.
func (w Weak[T]) Lock() Ptr[T] {
	if w.Expired() {
		return Ptr[T]{}
	}
	retain(w.block)
	return Ptr[T]{ptr: w.ptr, block: w.block}
}
