// Package draft autosaves in-progress form values under a role-scoped key
// and restores them when the form mounts or the role changes.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/debounce"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultPrefix   = "employee_form_draft"
	DefaultDebounce = 2 * time.Second
)

// Form is the form whose values are persisted.
type Form[T any] interface {
	Values() T
	// Defaults returns the values a fresh form starts from. Restored drafts
	// are decoded on top of them.
	Defaults() T
	Reset(values T)
}

type options struct {
	prefix  string
	delay   time.Duration
	clock   clockwork.Clock
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*options)

func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

func WithDebounce(delay time.Duration) Option {
	return func(o *options) { o.delay = delay }
}

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithTimeout bounds store calls made from the debounce timer.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

type Persister[T any] struct {
	store draft.Store
	form  Form[T]
	opts  options
	timer *debounce.Timer

	mu     sync.Mutex
	role   string
	closed bool
}

func NewPersister[T any](store draft.Store, form Form[T], role string, opts ...Option) *Persister[T] {
	o := options{
		prefix:  DefaultPrefix,
		delay:   DefaultDebounce,
		timeout: 5 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Persister[T]{
		store: store,
		form:  form,
		opts:  o,
		timer: debounce.New(o.clock, o.delay),
		role:  role,
	}
}

// Key is the storage key for the current role.
func (p *Persister[T]) Key() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keyLocked()
}

func (p *Persister[T]) keyLocked() string {
	return Key(p.opts.prefix, p.role)
}

// Key builds the storage key of role's draft.
func Key(prefix, role string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + role
}

// Restore loads the draft for the current key, if any, into the form.
func (p *Persister[T]) Restore(ctx context.Context) {
	key := p.Key()

	data, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, draft.ErrNotFound) {
			p.opts.logger.Debug("failed to load draft", "key", key, "error", err)
		}
		return
	}

	values := p.form.Defaults()
	if err := json.Unmarshal(data, &values); err != nil {
		p.opts.logger.Debug("failed to decode draft", "key", key, "error", err)
		return
	}
	p.form.Reset(values)
}

// SetRole switches the storage key. A pending save for the old key is
// dropped and the draft of the new key is restored.
func (p *Persister[T]) SetRole(ctx context.Context, role string) {
	p.mu.Lock()
	if p.role == role || p.closed {
		p.mu.Unlock()
		return
	}
	p.timer.Cancel()
	p.role = role
	p.mu.Unlock()

	p.Restore(ctx)
}

// Changed reschedules the debounced save. Call it on every value change.
func (p *Persister[T]) Changed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	key := p.keyLocked()
	p.timer.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.opts.timeout)
		defer cancel()
		p.save(ctx, key)
	})
}

// SaveNow writes the current values immediately.
func (p *Persister[T]) SaveNow(ctx context.Context) {
	p.save(ctx, p.Key())
}

// Flush writes a pending save right away. It is a no-op when nothing is
// pending.
func (p *Persister[T]) Flush(ctx context.Context) {
	if p.timer.Cancel() {
		p.SaveNow(ctx)
	}
}

func (p *Persister[T]) save(ctx context.Context, key string) {
	data, err := json.Marshal(p.form.Values())
	if err != nil {
		p.opts.logger.Debug("failed to encode draft", "key", key, "error", err)
		return
	}
	if err := p.store.Set(ctx, key, data); err != nil {
		p.opts.logger.Debug("failed to save draft", "key", key, "error", err)
		return
	}
	p.opts.logger.Debug("draft saved", "key", key, "bytes", len(data))
}

// ClearDraft drops any pending save and deletes the stored draft.
func (p *Persister[T]) ClearDraft(ctx context.Context) {
	p.timer.Cancel()
	key := p.Key()
	if err := p.store.Delete(ctx, key); err != nil {
		p.opts.logger.Debug("failed to clear draft", "key", key, "error", err)
	}
}

// ClearDraftAndReset clears the draft and resets the form to initial.
func (p *Persister[T]) ClearDraftAndReset(ctx context.Context, initial T) {
	p.ClearDraft(ctx)
	p.form.Reset(initial)
}

// Close cancels any pending save. Later changes are ignored.
func (p *Persister[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.timer.Cancel()
}
