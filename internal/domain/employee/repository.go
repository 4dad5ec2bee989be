package employee

import "context"

// BasicInfoResource is the REST collection holding basic-info records.
type BasicInfoResource interface {
	Fetch(ctx context.Context, page, limit int) (Page[BasicInfo], error)
	Create(ctx context.Context, payload BasicInfoPayload) error
}

// DetailResource is the REST collection holding detail records.
type DetailResource interface {
	Fetch(ctx context.Context, page, limit int) (Page[Detail], error)
	Create(ctx context.Context, payload DetailPayload) error
}
