package draft

import "errors"

var (
	ErrNotFound   = errors.New("draft not found")
	ErrInvalidKey = errors.New("invalid draft key")
)
