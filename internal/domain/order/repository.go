package order

import "context"

type Repository interface {
	// Create persists the whole aggregate in one atomic write and assigns
	// ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, o *Order) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	// Update writes only Notes, PaymentMethod and PaymentStatus.
	Update(ctx context.Context, o *Order) (*Order, error)
	// UpdateStatus moves the order from one status to another only if it is
	// still in status from. It returns ErrOrderNotFound when the order does
	// not exist and ErrInvalidTransition when the current status differs.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Order, error)
	Delete(ctx context.Context, id string) error
}
