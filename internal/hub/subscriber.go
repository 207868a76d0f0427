package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber is one open SSE stream bound to a single topic. It has exactly
// two states, open and closed; the transition happens once and is terminal.
// The HTTP handler goroutine drains Updates and exits when Done closes.
type Subscriber struct {
	id        uuid.UUID
	topic     string
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscriber(topic string, buffer int) *Subscriber {
	return &Subscriber{
		id:    uuid.New(),
		topic: topic,
		send:  make(chan []byte, buffer),
		done:  make(chan struct{}),
	}
}

// ID identifies the subscriber in logs. The same peer may hold several
// subscriptions to the same topic; each gets its own id.
func (s *Subscriber) ID() uuid.UUID {
	return s.id
}

// Topic returns the topic this subscriber is registered under.
func (s *Subscriber) Topic() string {
	return s.topic
}

// Updates delivers serialized update payloads for this subscriber's topic.
func (s *Subscriber) Updates() <-chan []byte {
	return s.send
}

// Done is closed when the hub drops the subscriber (eviction or shutdown).
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

func (s *Subscriber) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
