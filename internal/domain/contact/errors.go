package contact

import "errors"

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidContact  = errors.New("phone, email, address and hours cannot be empty")
)
