package lookup

import (
	"context"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
)

type LookupService interface {
	Departments(ctx context.Context, query string) ([]option.Option, error)
	Locations(ctx context.Context, query string) ([]option.Option, error)
}
