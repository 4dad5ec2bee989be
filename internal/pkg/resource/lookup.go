package resource

import (
	"context"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
)

// lookupSource searches a {id, name} collection with name_like.
type lookupSource struct {
	client *Client
	path   string
}

func NewDepartmentSource(client *Client) lookup.Source {
	return &lookupSource{client: client, path: "/departments"}
}

func NewLocationSource(client *Client) lookup.Source {
	return &lookupSource{client: client, path: "/locations"}
}

func (s *lookupSource) Search(ctx context.Context, query string) ([]option.Option, error) {
	params := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		params.Set("name_like", q)
	}

	var records []lookup.Record
	if _, err := s.client.list(ctx, s.path, params, &records); err != nil {
		return nil, err
	}
	return lookup.Options(records), nil
}
