// Package repository opens the configured storage backends.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/config"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/file"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/memory"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/postgresql"
	redisrepo "github.com/cmlabs-hris/employee-wizard-go/internal/repository/redis"
	"github.com/redis/go-redis/v9"
)

// redisNamespace is prepended to every draft key kept in redis.
const redisNamespace = "drafts"

// OpenDraftStore opens the draft backend named by DRAFT_BACKEND. The returned
// func releases its connections.
func OpenDraftStore(ctx context.Context, cfg *config.Config) (draft.Store, func(), error) {
	switch cfg.Draft.Backend {
	case config.DraftBackendMemory:
		return memory.NewDraftRepository(), func() {}, nil

	case config.DraftBackendFile:
		store, err := file.NewDraftRepository(cfg.Draft.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.DraftBackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns:       cfg.Database.MaxConns,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		store := postgresql.NewDraftRepository(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case config.DraftBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		}
		return redisrepo.NewDraftRepository(client, redisNamespace, cfg.Draft.TTL), closeClient, nil
	}
	return nil, nil, fmt.Errorf("unknown draft backend %q", cfg.Draft.Backend)
}
