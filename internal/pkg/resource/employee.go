package resource

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/employee"
)

type basicInfoResource struct {
	client *Client
}

func NewBasicInfoResource(client *Client) employee.BasicInfoResource {
	return &basicInfoResource{client: client}
}

func (r *basicInfoResource) Fetch(ctx context.Context, page, limit int) (employee.Page[employee.BasicInfo], error) {
	var records []employee.BasicInfo
	total, err := r.client.list(ctx, "/basicInfo", pageQuery(page, limit), &records)
	if err != nil {
		return employee.Page[employee.BasicInfo]{}, fmt.Errorf("%w: %w", employee.ErrBasicInfoFetch, err)
	}
	return newPage(records, total, page, limit), nil
}

func (r *basicInfoResource) Create(ctx context.Context, payload employee.BasicInfoPayload) error {
	if err := r.client.create(ctx, "/basicInfo", payload); err != nil {
		return fmt.Errorf("%w: %w", employee.ErrBasicInfoWrite, err)
	}
	return nil
}

type detailResource struct {
	client *Client
}

func NewDetailResource(client *Client) employee.DetailResource {
	return &detailResource{client: client}
}

func (r *detailResource) Fetch(ctx context.Context, page, limit int) (employee.Page[employee.Detail], error) {
	var records []employee.Detail
	total, err := r.client.list(ctx, "/details", pageQuery(page, limit), &records)
	if err != nil {
		return employee.Page[employee.Detail]{}, fmt.Errorf("%w: %w", employee.ErrDetailFetch, err)
	}
	return newPage(records, total, page, limit), nil
}

func (r *detailResource) Create(ctx context.Context, payload employee.DetailPayload) error {
	if err := r.client.create(ctx, "/details", payload); err != nil {
		return fmt.Errorf("%w: %w", employee.ErrDetailWrite, err)
	}
	return nil
}

// newPage fills pagination meta. Without X-Total-Count the total is the
// number of records returned; without a limit the whole total is one page.
func newPage[T any](records []T, total, page, limit int) employee.Page[T] {
	if records == nil {
		records = []T{}
	}
	if total < 0 {
		total = len(records)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = total
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return employee.Page[T]{
		Data:       records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
