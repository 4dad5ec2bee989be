package lookup

import (
	"context"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/utils"
)

// Source searches a reference collection by name.
type Source interface {
	Search(ctx context.Context, query string) ([]option.Option, error)
}

// Record is the wire shape of departments and locations.
type Record struct {
	ID   utils.FlexibleID `json:"id"`
	Name string           `json:"name"`
}

func (r Record) Option() option.Option {
	return option.Option{Value: r.ID.String(), Label: r.Name}
}

func Options(records []Record) []option.Option {
	out := make([]option.Option, 0, len(records))
	for _, r := range records {
		out = append(out, r.Option())
	}
	return out
}
