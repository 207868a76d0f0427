package hub

import (
	"log/slog"
	"time"

	"github.com/pscheid92/pollpulse/internal/metrics"
)

// Hub is the broadcast facade over a Registry. Subscribe opens a stream,
// Publish fans a payload out to the topic's current snapshot, Shutdown
// closes everything. The hub never persists or reorders payloads.
type Hub struct {
	registry *Registry
	buffer   int
}

// New creates a hub over the given registry. buffer is the per-subscriber
// send channel capacity; a subscriber that falls this far behind is evicted
// on the next publish rather than retried.
func New(registry *Registry, buffer int) *Hub {
	return &Hub{
		registry: registry,
		buffer:   buffer,
	}
}

// Subscribe registers a new subscriber for topic. The caller owns the
// stream side: it must drain Updates and call Unsubscribe when the
// transport closes.
func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := newSubscriber(topic, h.buffer)
	h.registry.Register(sub)

	metrics.HubActiveTopics.Set(float64(h.registry.TopicCount()))
	metrics.HubConnectedSubscribers.Inc()

	slog.Debug("Subscriber registered", "poll_id", topic, "subscriber_id", sub.id.String())
	return sub
}

// Unsubscribe closes sub and removes it from the registry. Idempotent:
// the peer-close path and the eviction path may both land here.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	sub.close()

	if !h.registry.Unregister(sub) {
		return
	}

	metrics.HubActiveTopics.Set(float64(h.registry.TopicCount()))
	metrics.HubConnectedSubscribers.Dec()

	slog.Debug("Subscriber unregistered", "poll_id", sub.topic, "subscriber_id", sub.id.String())
}

// Publish fans payload out to every subscriber in the topic's current
// snapshot and returns the snapshot size. A full send buffer counts as a
// dead peer: the subscriber is evicted and the pass continues. Publishing
// to a topic with no subscribers returns 0 and is not an error.
func (h *Hub) Publish(topic string, payload []byte) int {
	start := time.Now()
	subs := h.registry.Snapshot(topic)

	for _, sub := range subs {
		select {
		case sub.send <- payload:
			metrics.HubUpdatesDeliveredTotal.Inc()
		default:
			slog.Warn("Evicting slow subscriber", "poll_id", topic, "subscriber_id", sub.id.String())
			metrics.HubSubscribersEvictedTotal.Inc()
			h.Unsubscribe(sub)
		}
	}

	outcome := "delivered"
	if len(subs) == 0 {
		outcome = "empty"
	}
	metrics.HubPublishesTotal.WithLabelValues(outcome).Inc()
	metrics.HubPublishDuration.Observe(time.Since(start).Seconds())
	return len(subs)
}

// Shutdown closes every open subscriber so clients observe a clean stream
// end instead of a silent hang. The registry is left empty.
func (h *Hub) Shutdown() {
	subs := h.registry.Drain()
	for _, sub := range subs {
		sub.close()
		metrics.HubShutdownDisconnectsTotal.Inc()
	}

	metrics.HubActiveTopics.Set(0)
	metrics.HubConnectedSubscribers.Set(0)

	slog.Info("Hub shutdown complete", "disconnected_subscribers", len(subs))
}

// TopicCount reports how many topics currently have subscribers.
func (h *Hub) TopicCount() int {
	return h.registry.TopicCount()
}

// SubscriberCount reports open subscribers across all topics.
func (h *Hub) SubscriberCount() int {
	return h.registry.SubscriberCount()
}
