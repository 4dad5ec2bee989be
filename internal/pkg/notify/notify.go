package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

const DefaultDuration = 3 * time.Second

type Notification struct {
	ID       string        `json:"id"`
	Type     Type          `json:"type"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Sink receives fire-and-forget notifications.
type Sink interface {
	Notify(n Notification)
}

// Center keeps the visible notifications and dismisses each one after its duration.
type Center struct {
	clock           clockwork.Clock
	defaultDuration time.Duration

	mu       sync.Mutex
	items    []Notification
	timers   map[string]clockwork.Timer
	onChange func()
	closed   bool
}

func NewCenter(clock clockwork.Clock, defaultDuration time.Duration) *Center {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	return &Center{
		clock:           clock,
		defaultDuration: defaultDuration,
		timers:          make(map[string]clockwork.Timer),
	}
}

// OnChange registers a callback invoked after a notification is added or dismissed.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Notify implements Sink.
func (c *Center) Notify(n Notification) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Duration == 0 {
		n.Duration = c.defaultDuration
	}
	c.items = append(c.items, n)
	if n.Duration > 0 {
		id := n.ID
		c.timers[id] = c.clock.AfterFunc(n.Duration, func() { c.Dismiss(id) })
	}
	onChange := c.onChange
	c.mu.Unlock()

	slog.Debug("Notification shown", "id", n.ID, "type", n.Type, "message", n.Message)
	if onChange != nil {
		onChange()
	}
}

// Dismiss removes a notification before its duration elapses.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	removed := false
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			removed = true
			break
		}
	}
	onChange := c.onChange
	c.mu.Unlock()

	if removed && onChange != nil {
		onChange()
	}
}

// Active returns a copy of the visible notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Close stops every dismissal timer. Later notifications are dropped.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.closed = true
}

// LogSink writes notifications to slog. Used where nothing renders them.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(n Notification) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch n.Type {
	case TypeError:
		logger.Error(n.Message, "notification", n.Type)
	case TypeWarning:
		logger.Warn(n.Message, "notification", n.Type)
	default:
		logger.Info(n.Message, "notification", n.Type)
	}
}

// Multi delivers each notification to every sink in order.
type Multi []Sink

func (m Multi) Notify(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}
