package gallery

import "errors"

var (
	ErrImageNotFound = errors.New("gallery image not found")
	ErrInvalidImage  = errors.New("title and image are required")
)
