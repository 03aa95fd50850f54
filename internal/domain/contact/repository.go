package contact

import "context"

type Repository interface {
	// Get returns ErrContactNotFound when the record has not been seeded yet.
	Get(ctx context.Context) (*Contact, error)
	Create(ctx context.Context, c *Contact) (*Contact, error)
	Update(ctx context.Context, c *Contact) (*Contact, error)
}
