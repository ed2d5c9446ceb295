// Package metrics exposes a vectorizer client's routing counters to
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hivellm/go-vectorizer"
)

const (
	namespace = "vectorizer"
	subsystem = "routing"
)

// statser is the part of *vectorizer.Client the collector needs.
type statser interface {
	Stats() vectorizer.Stats
}

// Collector exports the routing counters of one client. It holds no state
// of its own: every scrape snapshots the client. Register it with any
// prometheus.Registerer:
//
//	prometheus.MustRegister(metrics.NewCollector(client))
type Collector struct {
	client statser

	requests  *prometheus.Desc
	reads     *prometheus.Desc
	writes    *prometheus.Desc
	failovers *prometheus.Desc
	exhausted *prometheus.Desc
	nodeHits  *prometheus.Desc
}

// NewCollector creates a Collector for client.
func NewCollector(client statser) *Collector {
	return &Collector{
		client: client,
		requests: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "requests_total"),
			"Total number of routed requests",
			nil, nil,
		),
		reads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "reads_total"),
			"Total number of routed read requests",
			nil, nil,
		),
		writes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "writes_total"),
			"Total number of routed write requests",
			nil, nil,
		),
		failovers: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "failovers_total"),
			"Total number of failover advances to a next candidate node",
			nil, nil,
		),
		exhausted: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "exhausted_total"),
			"Total number of requests that failed on every candidate node",
			nil, nil,
		),
		nodeHits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "node_hits_total"),
			"Total number of attempts per node, failed attempts included",
			[]string{"node"}, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.reads
	ch <- c.writes
	ch <- c.failovers
	ch <- c.exhausted
	ch <- c.nodeHits
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.client.Stats()
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(stats.Requests))
	ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(stats.Reads))
	ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(stats.Writes))
	ch <- prometheus.MustNewConstMetric(c.failovers, prometheus.CounterValue, float64(stats.Failovers))
	ch <- prometheus.MustNewConstMetric(c.exhausted, prometheus.CounterValue, float64(stats.Exhausted))
	for node, hits := range stats.NodeHits {
		ch <- prometheus.MustNewConstMetric(c.nodeHits, prometheus.CounterValue, float64(hits), node)
	}
}
