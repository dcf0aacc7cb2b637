// Package shared implements reference-counted shared ownership: strong
// handles (Ptr), weak observers (Weak), and combined allocation (Make).
//
// # Handles
//
// A Ptr keeps its value alive; the deletion policy runs exactly once,
// when the strong count drops from one to zero. A Weak observes the same
// control block without owning anything: it can report whether the value
// is still there and, while it is, promote itself into a Ptr.
//
//	p := shared.New(res)          // strong count 1
//	q := p.Clone()                // strong count 2
//	w := shared.NewWeak(p)        // weak count 1
//	p.Release()                   // strong count 1
//	q.Release()                   // deleter runs here; w.Expired() == true
//	w.Release()                   // last reference of any kind, block dies
//
// Promotion comes in two ergonomics over the same check: Lock converts
// expiry into an empty handle and never fails, FromWeak reports it as
// ErrDangling.
//
// # Control blocks
//
// Each group of handles shares one control block. Two storage strategies
// exist behind the same release capability: a pointer-owning block for
// values handed over as raw pointers (New), and an inline block that
// embeds the value next to the counters (Make), saving an allocation.
// Release is two-phase in both: the value goes at strong zero, the block
// at strong+weak zero, so weak handles can observe "expired" in between.
//
// # Discipline
//
// Counters are not synchronized. A control block must be mutated from a
// single goroutine at a time; concurrent handle operations over one block
// need external locking. Handles are copied with Clone/Move, never by
// plain Go assignment, and each non-empty handle is released exactly
// once. Cyclic strong ownership is never collected; break cycles with
// Weak.
package shared
