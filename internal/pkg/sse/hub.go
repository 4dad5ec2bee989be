package sse

import (
	"sync"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/google/uuid"
)

// EventNotification is the SSE event name carrying a notify.Notification.
const EventNotification = "notification"

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Topic string
	Event string
	Data  interface{}
}

// Hub manages SSE subscribers per topic. The BFF uses the wizard role as topic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a topic and returns the event channel and cleanup function
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a topic. Full subscribers miss the event.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Topic = topic
	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Broadcast sends an event to every subscriber of every topic.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	topics := make([]string, 0, len(h.subscribers))
	for topic := range h.subscribers {
		topics = append(topics, topic)
	}
	h.mu.RUnlock()

	for _, topic := range topics {
		h.Publish(topic, event)
	}
}

// Notify implements notify.Sink by broadcasting n to all subscribers.
func (h *Hub) Notify(n notify.Notification) {
	h.Broadcast(Event{Event: EventNotification, Data: withID(n)})
}

// SubscriberCount returns the number of active subscribers for a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the total number of active subscribers across all topics
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// TopicSink publishes notifications to a single topic.
type TopicSink struct {
	Hub   *Hub
	Topic string
}

func (s TopicSink) Notify(n notify.Notification) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(s.Topic, Event{Event: EventNotification, Data: withID(n)})
}

func withID(n notify.Notification) notify.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return n
}
