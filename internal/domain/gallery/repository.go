package gallery

import "context"

// Repository lists images ordered by DisplayOrder ascending, newest first
// within the same DisplayOrder.
type Repository interface {
	Create(ctx context.Context, img *Image) (*Image, error)
	Update(ctx context.Context, img *Image) (*Image, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Image, error)
	List(ctx context.Context, filter ListFilter) ([]*Image, error)
}
