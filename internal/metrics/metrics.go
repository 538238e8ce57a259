// Package metrics defines Prometheus metrics for simgraph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simgraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	TraversalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simgraph_traversal_duration_seconds",
			Help:    "Graph traversal duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"depth"},
	)

	TraversalNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "simgraph_traversal_nodes",
			Help:    "Nodes returned per traversal",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_nodes_total",
			Help: "Total node count",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_edges_total",
			Help: "Total edge count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		TraversalDuration, TraversalNodes, WSConnections,
		NodeCount, EdgeCount,
	)
}
