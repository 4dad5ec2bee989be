// Package layer hands out stacking bands for overlays such as dropdowns and
// modals. Each acquired band sits above every band currently held.
package layer

import "sync"

const (
	DefaultBase = 1000
	DefaultStep = 20
)

// Band is a z-index range owned by one overlay until Release is called.
type Band struct {
	level   int
	overlay int
	svc     *Service
	once    sync.Once
}

// Overlay is the z-index for the backdrop of the band.
func (b *Band) Overlay() int { return b.overlay }

// Content is the z-index for the content drawn above the backdrop.
func (b *Band) Content() int { return b.overlay + 1 }

// Level is the 1-based stacking level of the band.
func (b *Band) Level() int { return b.level }

// Release returns the band to the service. Calling it more than once is a no-op.
func (b *Band) Release() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		b.svc.release(b.level)
	})
}

type Service struct {
	mu   sync.Mutex
	base int
	step int
	held map[int]struct{}
}

func NewService(base, step int) *Service {
	if step <= 0 {
		step = DefaultStep
	}
	return &Service{
		base: base,
		step: step,
		held: make(map[int]struct{}),
	}
}

// Acquire reserves the band directly above the highest band in use.
func (s *Service) Acquire() *Band {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.topLocked() + 1
	s.held[level] = struct{}{}

	return &Band{
		level:   level,
		overlay: s.base + (level-1)*s.step,
		svc:     s,
	}
}

// Active returns the number of bands currently held.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.held)
}

func (s *Service) release(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, level)
}

func (s *Service) topLocked() int {
	top := 0
	for level := range s.held {
		if level > top {
			top = level
		}
	}
	return top
}
