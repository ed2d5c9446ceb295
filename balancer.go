package vectorizer

import "sync/atomic"

// roundRobinStrategy hands out replica URLs in ring order. One instance
// lives per client topology; the cursor is the only mutable routing state
// in the SDK and is advanced with a single atomic add, so concurrent
// callers never consume the same slot twice. The URL list itself is frozen
// at construction.
type roundRobinStrategy struct {
	urls    []string
	current uint64
}

func newRoundRobinStrategy(urls []string) *roundRobinStrategy {
	return &roundRobinStrategy{
		urls:    urls,
		current: 0,
	}
}

func (r *roundRobinStrategy) IsEmpty() bool {
	return len(r.urls) == 0
}

func (r *roundRobinStrategy) Size() int {
	return len(r.urls)
}

// GetNextURL returns the next replica in the ring, or "" when no replicas
// are configured and the caller must fall back to the master.
func (r *roundRobinStrategy) GetNextURL() string {
	if len(r.urls) == 0 {
		return ""
	}
	return r.urls[r.nextIndex()]
}

// GetRing returns every replica exactly once, starting at the next ring
// position: element 0 is what GetNextURL would have returned, followed by
// the remaining replicas in ring order. It consumes one cursor slot, same
// as GetNextURL.
func (r *roundRobinStrategy) GetRing() []string {
	size := uint64(len(r.urls))
	if size == 0 {
		return nil
	}
	next := r.nextIndex()
	ring := make([]string, 0, size)
	for i := uint64(0); i < size; i++ {
		ring = append(ring, r.urls[(next+i)%size])
	}
	return ring
}

func (r *roundRobinStrategy) nextIndex() uint64 {
	next := atomic.AddUint64(&r.current, 1)
	return (next - 1) % uint64(len(r.urls))
}
