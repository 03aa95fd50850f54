package product

import (
	"context"
	"fmt"
	"strings"

	dom "example.com/cafe-admin/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func validate(p *dom.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", dom.ErrInvalidProduct)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", dom.ErrInvalidProduct, p.Category)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", dom.ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", dom.ErrInvalidProduct)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

// Update replaces every editable field. The stored image is kept when p
// carries none.
func (s *Service) Update(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validate(p); err != nil {
		return nil, err
	}

	existed, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	existed.Name = p.Name
	existed.Category = p.Category
	existed.Price = p.Price
	existed.Description = p.Description
	existed.Stock = p.Stock
	existed.Featured = p.Featured
	existed.IsAvailable = p.IsAvailable
	if p.Image != "" {
		existed.Image = p.Image
	}

	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*dom.Product, error) {
	return s.repo.List(ctx, dom.ListFilter{})
}

func (s *Service) ListByCategory(ctx context.Context, category dom.Category) ([]*dom.Product, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", dom.ErrInvalidProduct, category)
	}
	return s.repo.List(ctx, dom.ListFilter{Category: &category})
}
