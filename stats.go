package vectorizer

import "sync"

// Stats is a point-in-time snapshot of the client's routing counters. A
// WithMaster view shares counters with its parent, so Stats reflects the
// whole client regardless of which view served a call.
type Stats struct {
	// Requests counts every routed call, reads and writes alike.
	Requests uint64
	// Reads and Writes split Requests by operation kind.
	Reads  uint64
	Writes uint64
	// Failovers counts candidate advances: attempts after the first one
	// within a single call.
	Failovers uint64
	// Exhausted counts calls that failed on every candidate.
	Exhausted uint64
	// NodeHits counts attempts per node URL, failed attempts included.
	NodeHits map[string]uint64
}

// routerStats aggregates routing counters behind a mutex. Counter volume is
// one lock per attempt, which is noise next to an HTTP round trip.
type routerStats struct {
	mu        sync.Mutex
	requests  uint64
	reads     uint64
	writes    uint64
	failovers uint64
	exhausted uint64
	nodeHits  map[string]uint64
}

func newRouterStats() *routerStats {
	return &routerStats{nodeHits: make(map[string]uint64)}
}

func (s *routerStats) recordCall(kind Kind) {
	s.mu.Lock()
	s.requests++
	if kind == Write {
		s.writes++
	} else {
		s.reads++
	}
	s.mu.Unlock()
}

func (s *routerStats) recordNodeHit(url string) {
	s.mu.Lock()
	s.nodeHits[url]++
	s.mu.Unlock()
}

func (s *routerStats) recordFailover() {
	s.mu.Lock()
	s.failovers++
	s.mu.Unlock()
}

func (s *routerStats) recordExhausted() {
	s.mu.Lock()
	s.exhausted++
	s.mu.Unlock()
}

func (s *routerStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	hits := make(map[string]uint64, len(s.nodeHits))
	for url, n := range s.nodeHits {
		hits[url] = n
	}
	return Stats{
		Requests:  s.requests,
		Reads:     s.reads,
		Writes:    s.writes,
		Failovers: s.failovers,
		Exhausted: s.exhausted,
		NodeHits:  hits,
	}
}
