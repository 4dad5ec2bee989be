package employee

import "errors"

var (
	ErrBasicInfoWrite   = errors.New("failed to submit basic info")
	ErrDetailWrite      = errors.New("failed to submit details")
	ErrBasicInfoFetch   = errors.New("failed to fetch basic info")
	ErrDetailFetch      = errors.New("failed to fetch details")
	ErrResourceResponse = errors.New("unexpected resource response")
)
