package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
)

type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string][]byte)}
}

func (r *DraftRepository) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, draft.ErrInvalidKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.drafts[key]
	if !ok {
		return nil, draft.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *DraftRepository) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[key] = append([]byte(nil), value...)
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, key string) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, key)
	return nil
}
