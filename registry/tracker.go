package registry

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Tracker records live control blocks as they are allocated, mutated and
// freed. It satisfies the shared package's Tracer interface; wire it in
// with shared.SetTracer.
//
// Unlike the counters it observes, the Tracker is safe for concurrent
// use: blocks from independent goroutines may report into one Tracker.
type Tracker struct {
	blocks    map[BlockID]*BlockInfo
	mu        sync.RWMutex
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		blocks: make(map[BlockID]*BlockInfo, 64),
	}
}

// BlockAllocated records a new block with a strong count of one.
func (t *Tracker) BlockAllocated(id uint64, inline bool) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	info := &BlockInfo{
		ID:         BlockID(id),
		Strong:     1,
		Inline:     inline,
		ObjectLive: true,
	}
	t.blocks[info.ID] = info
	t.mu.Unlock()

	Logger().Debug("block allocated",
		zap.Uint64("id", id),
		zap.Bool("inline", inline))

	t.notify(Event{ID: BlockID(id), Type: EventAllocated, Strong: 1, Inline: inline})
}

// CountsChanged records a strong/weak count mutation.
func (t *Tracker) CountsChanged(id uint64, strong, weak int) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	info, ok := t.blocks[BlockID(id)]
	var inline bool
	if ok {
		info.Strong = strong
		info.Weak = weak
		inline = info.Inline
	}
	t.mu.Unlock()
	if !ok {
		return
	}

	t.notify(Event{ID: BlockID(id), Type: EventCounts, Strong: strong, Weak: weak, Inline: inline})
}

// ObjectReleased records that the managed value is gone.
func (t *Tracker) ObjectReleased(id uint64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	info, ok := t.blocks[BlockID(id)]
	var ev Event
	if ok {
		info.ObjectLive = false
		ev = Event{ID: info.ID, Type: EventObjectReleased, Strong: info.Strong, Weak: info.Weak, Inline: info.Inline}
	}
	t.mu.Unlock()
	if !ok {
		return
	}

	Logger().Debug("object released", zap.Uint64("id", id))

	t.notify(ev)
}

// BlockFreed records the block's death and stops tracking it.
func (t *Tracker) BlockFreed(id uint64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	info, ok := t.blocks[BlockID(id)]
	var inline bool
	if ok {
		inline = info.Inline
		delete(t.blocks, BlockID(id))
	}
	t.mu.Unlock()
	if !ok {
		return
	}

	Logger().Debug("block freed", zap.Uint64("id", id))

	t.notify(Event{ID: BlockID(id), Type: EventFreed, Inline: inline})
}

// Subscribe adds an observer for lifecycle events.
func (t *Tracker) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Tracker) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live blocks.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.blocks)
}

// Each iterates over live blocks in ID order.
func (t *Tracker) Each(fn func(BlockInfo) bool) {
	for _, info := range t.Snapshot() {
		if !fn(info) {
			break
		}
	}
}

// Snapshot returns a copy of all live blocks, sorted by ID.
func (t *Tracker) Snapshot() []BlockInfo {
	t.mu.RLock()
	out := make([]BlockInfo, 0, len(t.blocks))
	for _, info := range t.blocks {
		out = append(out, *info)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Leaks returns blocks that still hold a live object. Call it when every
// handle should have been released; anything reported is a leak.
func (t *Tracker) Leaks() []BlockInfo {
	var leaks []BlockInfo
	for _, info := range t.Snapshot() {
		if info.ObjectLive {
			leaks = append(leaks, info)
		}
	}
	return leaks
}

// Close stops accepting lifecycle reports and drops all tracked state.
// Blocks released after Close go unrecorded.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.blocks = nil
	return nil
}

func (t *Tracker) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnBlockEvent(e)
	}
}
