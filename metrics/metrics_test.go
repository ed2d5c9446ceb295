package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectorizer "github.com/hivellm/go-vectorizer"
	"github.com/hivellm/go-vectorizer/metrics"
)

// staticStats stands in for a *vectorizer.Client.
type staticStats struct {
	stats vectorizer.Stats
}

func (s staticStats) Stats() vectorizer.Stats {
	return s.stats
}

func TestCollectorExportsRoutingCounters(t *testing.T) {
	collector := metrics.NewCollector(staticStats{stats: vectorizer.Stats{
		Requests:  7,
		Reads:     5,
		Writes:    2,
		Failovers: 3,
		Exhausted: 1,
		NodeHits: map[string]uint64{
			"http://master:15002":    4,
			"http://replica-1:15002": 6,
		},
	}})

	expected := `
# HELP vectorizer_routing_exhausted_total Total number of requests that failed on every candidate node
# TYPE vectorizer_routing_exhausted_total counter
vectorizer_routing_exhausted_total 1
# HELP vectorizer_routing_failovers_total Total number of failover advances to a next candidate node
# TYPE vectorizer_routing_failovers_total counter
vectorizer_routing_failovers_total 3
# HELP vectorizer_routing_node_hits_total Total number of attempts per node, failed attempts included
# TYPE vectorizer_routing_node_hits_total counter
vectorizer_routing_node_hits_total{node="http://master:15002"} 4
vectorizer_routing_node_hits_total{node="http://replica-1:15002"} 6
# HELP vectorizer_routing_reads_total Total number of routed read requests
# TYPE vectorizer_routing_reads_total counter
vectorizer_routing_reads_total 5
# HELP vectorizer_routing_requests_total Total number of routed requests
# TYPE vectorizer_routing_requests_total counter
vectorizer_routing_requests_total 7
# HELP vectorizer_routing_writes_total Total number of routed write requests
# TYPE vectorizer_routing_writes_total counter
vectorizer_routing_writes_total 2
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestCollectorScrapesLive(t *testing.T) {
	holder := &struct{ staticStats }{}
	collector := metrics.NewCollector(holder)

	assert.Equal(t, 5, testutil.CollectAndCount(collector))

	holder.stats.Requests = 10
	holder.stats.NodeHits = map[string]uint64{"http://master:15002": 10}
	assert.Equal(t, 6, testutil.CollectAndCount(collector))
}

func TestCollectorRegisters(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	collector := metrics.NewCollector(staticStats{})
	require.NoError(t, registry.Register(collector))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}
