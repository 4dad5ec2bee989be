package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the integration test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when the
// variable is unset so callers can skip.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 2})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateDrafts removes every stored draft.
func (t *TestDatabaseSetup) TruncateDrafts(ctx context.Context) error {
	if _, err := t.DB.Exec(ctx, "TRUNCATE TABLE employee_drafts"); err != nil {
		return fmt.Errorf("failed to truncate employee_drafts: %w", err)
	}
	return nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
