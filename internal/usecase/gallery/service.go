package gallery

import (
	"context"
	"strings"

	dom "example.com/cafe-admin/internal/domain/gallery"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, img *dom.Image) (*dom.Image, error) {
	img.Title = strings.TrimSpace(img.Title)
	if img.Title == "" || img.Image == "" {
		return nil, dom.ErrInvalidImage
	}
	return s.repo.Create(ctx, img)
}

// Update replaces title, description, featured flag and display order.
// The stored image path is kept unless img carries a new one.
func (s *Service) Update(ctx context.Context, img *dom.Image) (*dom.Image, error) {
	title := strings.TrimSpace(img.Title)
	if title == "" {
		return nil, dom.ErrInvalidImage
	}

	existed, err := s.repo.GetByID(ctx, img.ID)
	if err != nil {
		return nil, err
	}

	existed.Title = title
	existed.Description = img.Description
	existed.Featured = img.Featured
	existed.DisplayOrder = img.DisplayOrder
	if img.Image != "" {
		existed.Image = img.Image
	}

	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*dom.Image, error) {
	return s.repo.List(ctx, dom.ListFilter{})
}

func (s *Service) ListFeatured(ctx context.Context) ([]*dom.Image, error) {
	return s.repo.List(ctx, dom.ListFilter{OnlyFeatured: true})
}
