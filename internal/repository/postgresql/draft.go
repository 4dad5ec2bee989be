package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const (
	createDraftsTable = `
		CREATE TABLE IF NOT EXISTS employee_drafts (
			draft_key  TEXT PRIMARY KEY,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	createDraftsIndex = `
		CREATE INDEX IF NOT EXISTS idx_employee_drafts_updated_at ON employee_drafts (updated_at)
	`
)

type DraftRepository interface {
	draft.Store
	draft.Purger
	// EnsureSchema creates the drafts table when it does not exist
	EnsureSchema(ctx context.Context) error
}

type draftRepositoryImpl struct {
	db database.Pool
}

func NewDraftRepository(db database.Pool) DraftRepository {
	return &draftRepositoryImpl{db: db}
}

func (r *draftRepositoryImpl) EnsureSchema(ctx context.Context) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createDraftsTable); err != nil {
			return fmt.Errorf("create employee_drafts: %w", err)
		}
		if _, err := tx.Exec(ctx, createDraftsIndex); err != nil {
			return fmt.Errorf("create employee_drafts index: %w", err)
		}
		return nil
	})
}

func (r *draftRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, draft.ErrInvalidKey
	}
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT payload FROM employee_drafts WHERE draft_key = $1`

	var payload []byte
	if err := q.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, draft.ErrNotFound
		}
		return nil, fmt.Errorf("get draft %s: %w", key, err)
	}
	return payload, nil
}

func (r *draftRepositoryImpl) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_drafts (draft_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (draft_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

func (r *draftRepositoryImpl) Delete(ctx context.Context, key string) error {
	if key == "" {
		return draft.ErrInvalidKey
	}
	q := database.GetQuerier(ctx, r.db)

	query := `DELETE FROM employee_drafts WHERE draft_key = $1`
	if _, err := q.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete draft %s: %w", key, err)
	}
	return nil
}

func (r *draftRepositoryImpl) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `DELETE FROM employee_drafts WHERE updated_at < $1`
	tag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}
