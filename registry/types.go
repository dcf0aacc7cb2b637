package registry

// BlockID identifies a control block for the lifetime of the process.
// IDs are monotonic and never reused; 0 is never issued.
type BlockID uint64

// Event types for block lifecycle notifications.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventCounts
	EventObjectReleased
	EventFreed
)

// Event represents a control-block lifecycle event.
type Event struct {
	ID     BlockID
	Type   EventType
	Strong int
	Weak   int
	Inline bool
}

// Observer receives notifications about block lifecycle events.
type Observer interface {
	OnBlockEvent(Event)
}

// BlockInfo is a point-in-time view of one tracked block.
type BlockInfo struct {
	ID         BlockID
	Strong     int
	Weak       int
	Inline     bool
	ObjectLive bool
}
