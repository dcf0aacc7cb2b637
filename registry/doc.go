// Package registry provides diagnostic tracking of live control blocks.
//
// The Tracker satisfies the shared package's Tracer interface and keeps
// a live view of every block: its counts, storage strategy, and whether
// the managed value is still alive. Observers can subscribe to lifecycle
// events, and Leaks reports blocks whose value survived past the point
// where everything should have been released.
//
//	tracker := registry.NewTracker()
//	shared.SetTracer(tracker)
//
//	// ... run workload ...
//
//	for _, b := range tracker.Leaks() {
//	    log.Printf("leaked block %d (strong=%d)", b.ID, b.Strong)
//	}
//
// Tracking is meant for tests, debugging, and tooling such as
// cmd/refwatch; production code normally runs with no tracer installed.
package registry
