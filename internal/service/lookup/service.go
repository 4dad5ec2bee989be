package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
)

type LookupServiceImpl struct {
	departments lookup.Source
	locations   lookup.Source
	sink        notify.Sink
}

// NewLookupService reports search failures to sink when it is not nil.
func NewLookupService(departments, locations lookup.Source, sink notify.Sink) lookup.LookupService {
	return &LookupServiceImpl{
		departments: departments,
		locations:   locations,
		sink:        sink,
	}
}

// Departments implements lookup.LookupService.
func (s *LookupServiceImpl) Departments(ctx context.Context, query string) ([]option.Option, error) {
	return s.search(ctx, s.departments, query, lookup.ErrDepartmentsFetch)
}

// Locations implements lookup.LookupService.
func (s *LookupServiceImpl) Locations(ctx context.Context, query string) ([]option.Option, error) {
	return s.search(ctx, s.locations, query, lookup.ErrLocationsFetch)
}

// search never returns nil options; a failed search yields an empty list
// next to the error so callers can keep rendering.
func (s *LookupServiceImpl) search(ctx context.Context, source lookup.Source, query string, kind error) ([]option.Option, error) {
	opts, err := source.Search(ctx, query)
	if err != nil {
		slog.Warn("Lookup search failed", "query", query, "error", err)
		if s.sink != nil {
			s.sink.Notify(notify.Notification{Type: notify.TypeError, Message: kind.Error()})
		}
		return []option.Option{}, fmt.Errorf("%w: %w", kind, err)
	}
	if opts == nil {
		opts = []option.Option{}
	}
	return opts, nil
}
