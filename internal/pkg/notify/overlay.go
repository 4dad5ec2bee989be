package notify

import "sync"

// Overlay is the blocking progress indicator shown while a submission runs.
type Overlay struct {
	mu      sync.RWMutex
	active  bool
	message string
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

func (o *Overlay) Show(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = true
	o.message = message
}

func (o *Overlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = false
	o.message = ""
}

func (o *Overlay) IsActive() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.active
}

func (o *Overlay) Message() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.message
}
