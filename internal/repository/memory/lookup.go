package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Catalog is an in-memory lookup source ranked with fuzzy matching. It is
// used when no lookup service URL is configured.
type Catalog struct {
	records []lookup.Record
}

func NewCatalog(records []lookup.Record) *Catalog {
	return &Catalog{records: append([]lookup.Record(nil), records...)}
}

// Search returns every record for a blank query, otherwise the fuzzy matches
// ordered by rank.
func (c *Catalog) Search(_ context.Context, query string) ([]option.Option, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return lookup.Options(c.records), nil
	}

	names := make([]string, len(c.records))
	for i, r := range c.records {
		names[i] = r.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	result := make([]option.Option, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, c.records[rank.OriginalIndex].Option())
	}
	return result, nil
}

func DefaultDepartments() []lookup.Record {
	return []lookup.Record{
		{ID: "1", Name: "Engineering"},
		{ID: "2", Name: "Finance"},
		{ID: "3", Name: "Human Resources"},
		{ID: "4", Name: "Marketing"},
		{ID: "5", Name: "Operations"},
		{ID: "6", Name: "Sales"},
	}
}

func DefaultLocations() []lookup.Record {
	return []lookup.Record{
		{ID: "1", Name: "Jakarta"},
		{ID: "2", Name: "Bandung"},
		{ID: "3", Name: "Surabaya"},
		{ID: "4", Name: "Yogyakarta"},
		{ID: "5", Name: "Remote"},
	}
}
