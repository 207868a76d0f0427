package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub metrics
var (
	// HubActiveTopics tracks the number of topics with at least one subscriber
	HubActiveTopics = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_active_topics",
			Help: "Number of topics with at least one open subscriber",
		},
	)

	// HubConnectedSubscribers tracks open subscriber streams across all topics
	HubConnectedSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_subscribers",
			Help: "Open subscriber streams across all topics",
		},
	)

	// HubPublishesTotal counts publish calls by outcome
	HubPublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_publishes_total",
			Help: "Publish calls by outcome",
		},
		[]string{"outcome"},
	)

	// HubUpdatesDeliveredTotal counts update events handed to subscriber buffers
	HubUpdatesDeliveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_updates_delivered_total",
			Help: "Update events handed to subscriber send buffers",
		},
	)

	// HubSubscribersEvictedTotal counts subscribers dropped for not draining their buffer
	HubSubscribersEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_subscribers_evicted_total",
			Help: "Subscribers dropped because their send buffer was full",
		},
	)

	// HubPublishDuration tracks fan-out latency in seconds
	HubPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_publish_duration_seconds",
			Help:    "Fan-out duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// HubShutdownDisconnectsTotal counts streams closed during graceful shutdown
	HubShutdownDisconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_shutdown_disconnects_total",
			Help: "Subscriber streams closed during graceful shutdown",
		},
	)
)

// HTTP metrics
var (
	// StreamRequestsTotal counts subscribe attempts by result
	StreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_requests_total",
			Help: "Subscribe attempts by result",
		},
		[]string{"result"},
	)

	// NotifyRequestsTotal counts publish requests by HTTP status class
	NotifyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_requests_total",
			Help: "Publish requests by HTTP status",
		},
		[]string{"status"},
	)
)
