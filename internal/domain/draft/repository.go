package draft

import (
	"context"
	"time"
)

// Store persists serialized drafts by key. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Purger is implemented by stores that can drop drafts nobody touched since
// cutoff. Stores with native expiry, such as redis, do not need it.
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
