package shared

// Tracer receives control-block lifecycle callbacks. The registry package
// provides a Tracker implementation; anything satisfying this interface
// can be wired in.
//
// Callbacks fire synchronously inside handle operations, on whatever
// goroutine performed the operation.
type Tracer interface {
	// BlockAllocated fires when a new control block comes into existence.
	// inline reports whether the value is embedded in the block.
	BlockAllocated(id uint64, inline bool)

	// CountsChanged fires after any strong or weak count mutation.
	CountsChanged(id uint64, strong, weak int)

	// ObjectReleased fires when the strong count hits zero and the
	// deletion policy has run.
	ObjectReleased(id uint64)

	// BlockFreed fires when both counts hit zero and the block dies.
	BlockFreed(id uint64)
}

var tracer Tracer

// SetTracer installs a lifecycle tracer for all control blocks created
// after the call. Pass nil to disable tracing. Tracing is off by default
// and costs a nil check per operation when disabled.
//
// This must be called before any handle operations it should observe.
func SetTracer(t Tracer) {
	tracer = t
}

func traceAllocated(c *refCounts, inline bool) {
	if tracer != nil {
		tracer.BlockAllocated(c.id, inline)
	}
}

func traceCounts(c *refCounts) {
	if tracer != nil {
		tracer.CountsChanged(c.id, c.strong, c.weak)
	}
}

func traceReleased(c *refCounts) {
	if tracer != nil {
		tracer.ObjectReleased(c.id)
	}
}

func traceFreed(c *refCounts) {
	if tracer != nil {
		tracer.BlockFreed(c.id)
	}
}
