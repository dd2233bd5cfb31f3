package indexes

import (
	"sync"
	"sync/atomic"

	"github.com/clearlist/screener-backend/models"
)

// Publisher holds the one live snapshot. Publish is a single atomic pointer
// swap: a concurrent reader sees either the previous snapshot or the new
// one in full, never a mix and never a partial value. Superseded snapshots
// are released by the garbage collector once the last in-flight query drops
// its reference; nothing else needs to track them.
//
// The publisher is the only synchronization point in the engine. Readers
// never need external locking; writers go through Update, which serializes
// whole read-build-publish cycles.
type Publisher struct {
	// serializes Update cycles so concurrent rebuilds for different
	// sources each seed from the other's result, never from a stale
	// snapshot both read before either published
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish makes the snapshot live. In-flight queries keep the snapshot they
// started with. Rebuilds that derive from the current snapshot must use
// Update instead; a bare Publish is only safe when the snapshot does not
// depend on what it replaces.
func (p *Publisher) Publish(snapshot *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current.Store(snapshot)
}

// Update runs one read-build-publish cycle under the publisher's lock:
// build receives the live snapshot (nil before the first publish) and its
// result is published atomically. A build error publishes nothing and the
// previous snapshot keeps serving. Holding the lock across the whole cycle
// is what lets concurrent ingestions of different sources compose instead
// of the last one evicting the others' entities.
func (p *Publisher) Update(build func(previous *Snapshot) (*Snapshot, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := build(p.current.Load())
	if err != nil {
		return err
	}
	p.current.Store(snapshot)
	return nil
}

// Current returns the live snapshot, or ErrNoSnapshot before the first
// successful ingestion. Callers fetch it once per request (or once per
// batch) so the whole request sees one consistent view.
func (p *Publisher) Current() (*Snapshot, error) {
	snapshot := p.current.Load()
	if snapshot == nil {
		return nil, models.ErrNoSnapshot
	}
	return snapshot, nil
}
