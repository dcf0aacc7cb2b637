// Package refkit provides ownership primitives for resources that need
// deterministic release: shared handles with reference-counted lifetime,
// weak (non-owning) observers, and unique single-owner handles.
//
// Go's garbage collector reclaims memory, but it gives no guarantee about
// when. Resources that wrap something beyond memory - file descriptors,
// arena slots, pooled buffers, handles into foreign systems - need their
// cleanup to run at a well-defined point. refkit tracks that point with
// explicit reference counts and runs a deletion policy exactly once when
// the last owner lets go.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	refkit/          Root package with the Deleter policy and Releaser interface
//	├── shared/      Shared ownership: Ptr[T], Weak[T], combined allocation
//	├── unique/      Unique ownership: Unique[T], Slice[T]
//	├── errors/      Structured error types for debugging
//	├── registry/    Live-block tracker with lifecycle events and logging
//	└── cmd/refwatch Interactive inspector over a demo workload
//
// # Quick Start
//
// Share a resource between owners:
//
//	p := shared.Make(NewConnection(addr))
//	q := p.Clone()       // second owner
//	p.Release()          // connection stays open, q still owns it
//	q.Release()          // last owner gone, Close runs here
//
// Observe without owning:
//
//	w := shared.NewWeak(p)
//	if s := w.Lock(); s.Valid() {
//	    defer s.Release()
//	    use(s.Get())
//	}
//
// # Ownership Model
//
// Every shared handle points at a control block holding two counts. The
// strong count tracks owners: when it reaches zero the deletion policy runs
// against the managed value, exactly once. The weak count tracks observers:
// the block itself stays alive until both counts are zero, so a weak handle
// can always answer "is the value still there?" even after the value is gone.
//
// Counts are plain integers. A control block must be mutated from one
// goroutine at a time; sharing handles across goroutines requires external
// synchronization.
package refkit
