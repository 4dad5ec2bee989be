package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/redis/go-redis/v9"
)

// Client is the subset of *redis.Client the draft repository uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type DraftRepository struct {
	client Client
	prefix string
	ttl    time.Duration
}

// NewDraftRepository namespaces every draft key with prefix. A zero ttl keeps
// drafts until they are deleted.
func NewDraftRepository(client Client, prefix string, ttl time.Duration) *DraftRepository {
	return &DraftRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *DraftRepository) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *DraftRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, draft.ErrInvalidKey
	}
	result, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, draft.ErrNotFound
		}
		return nil, fmt.Errorf("get draft %s: %w", key, err)
	}
	return result, nil
}

func (r *DraftRepository) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", key, err)
	}
	return nil
}
