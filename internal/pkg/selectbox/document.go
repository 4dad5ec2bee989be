package selectbox

import "sync"

// Listeners is a Document implementation for hosts that dispatch pointer
// events themselves, such as a terminal UI.
type Listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func()
}

func NewListeners() *Listeners {
	return &Listeners{fns: make(map[int]func())}
}

func (l *Listeners) OnPointerDownOutside(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

// PointerDown notifies every attached listener.
func (l *Listeners) PointerDown() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Count returns the number of attached listeners.
func (l *Listeners) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// FixedViewport reports constant space around the control.
type FixedViewport struct {
	Above int
	Below int
}

func (v FixedViewport) SpaceAround() (int, int) { return v.Above, v.Below }
