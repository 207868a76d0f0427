package hub

import "sync"

// Registry is the goroutine-safe mapping from topic to its live subscriber
// set. It is owned by a Hub instance rather than being package state, so
// independent hubs (e.g. in tests) never share subscribers.
//
// Invariant: a topic entry exists iff it has at least one subscriber. The
// entry is created lazily on the first Register and deleted inside the same
// critical section that empties it.
type Registry struct {
	mu     sync.Mutex
	topics map[string]map[*Subscriber]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		topics: make(map[string]map[*Subscriber]struct{}),
	}
}

// Register adds sub to its topic's set, creating the set if absent.
func (r *Registry) Register(sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, exists := r.topics[sub.topic]
	if !exists {
		subs = make(map[*Subscriber]struct{})
		r.topics[sub.topic] = subs
	}
	subs[sub] = struct{}{}
}

// Unregister removes sub from its topic's set and reports whether it was
// present. Removing an unknown or already-removed subscriber is a no-op:
// races between peer-initiated close and publish-time eviction are expected.
func (r *Registry) Unregister(sub *Subscriber) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, exists := r.topics[sub.topic]
	if !exists {
		return false
	}
	if _, exists := subs[sub]; !exists {
		return false
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(r.topics, sub.topic)
	}
	return true
}

// Snapshot returns a point-in-time copy of the topic's subscriber set.
// Concurrent registers after the snapshot is taken do not receive the
// in-flight publish; they get the next one.
func (r *Registry) Snapshot(topic string) []*Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, exists := r.topics[topic]
	if !exists {
		return nil
	}

	snapshot := make([]*Subscriber, 0, len(subs))
	for sub := range subs {
		snapshot = append(snapshot, sub)
	}
	return snapshot
}

// TopicCount returns the number of topics with at least one subscriber.
func (r *Registry) TopicCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.topics)
}

// SubscriberCount returns the number of open subscribers across all topics.
func (r *Registry) SubscriberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, subs := range r.topics {
		total += len(subs)
	}
	return total
}

// Drain empties the registry and returns every subscriber that was
// registered. Used once, during shutdown.
func (r *Registry) Drain() []*Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*Subscriber
	for topic, subs := range r.topics {
		for sub := range subs {
			all = append(all, sub)
		}
		delete(r.topics, topic)
	}
	return all
}
