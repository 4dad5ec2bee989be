package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/debounce"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/jonboulle/clockwork"
)

const DefaultSearchDelay = 300 * time.Millisecond

// SearchFunc runs one search.
type SearchFunc func(ctx context.Context, query string) ([]option.Option, error)

// Result is delivered once per completed search. Stale results, from a
// query superseded before it finished, are never delivered.
type Result struct {
	Query   string
	Options []option.Option
	Err     error
}

// Field debounces search text typed into a select and runs the latest
// query against fn.
type Field struct {
	fn      SearchFunc
	timer   *debounce.Timer
	deliver func(Result)
	timeout time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewField(fn SearchFunc, clock clockwork.Clock, delay time.Duration, deliver func(Result)) *Field {
	return &Field{
		fn:      fn,
		timer:   debounce.New(clock, delay),
		deliver: deliver,
		timeout: 10 * time.Second,
	}
}

// Query schedules a search for text, replacing any pending one.
func (f *Field) Query(text string) {
	f.timer.Schedule(func() { f.run(text) })
}

// Load searches immediately, e.g. for the initial option list.
func (f *Field) Load(text string) {
	f.timer.Cancel()
	go f.run(text)
}

func (f *Field) run(text string) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++
	seq := f.seq
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	f.cancel = cancel
	f.mu.Unlock()

	opts, err := f.fn(ctx, text)
	cancel()

	f.mu.Lock()
	stale := seq != f.seq
	f.mu.Unlock()
	if stale {
		return
	}
	f.deliver(Result{Query: text, Options: opts, Err: err})
}

// Close cancels pending and in-flight searches.
func (f *Field) Close() {
	f.timer.Cancel()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
