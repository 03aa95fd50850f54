package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/cafe-admin/internal/domain/product"
)

type mockProductRepository struct {
	products  map[string]*domproduct.Product
	nextID    int
	created   *domproduct.Product
	updated   *domproduct.Product
	deletedID string
	lastList  domproduct.ListFilter
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[string]*domproduct.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.ID = fmt.Sprintf("p%d", m.nextID)
	m.nextID++
	cloned := *p
	m.products[p.ID] = &cloned
	m.created = p
	return p, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if _, ok := m.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	m.products[p.ID] = &cloned
	m.updated = p
	return p, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(m.products, id)
	m.deletedID = id
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	m.lastList = filter
	var result []*domproduct.Product
	for _, p := range m.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		cloned := *p
		result = append(result, &cloned)
	}
	return result, nil
}

func latte() *domproduct.Product {
	return &domproduct.Product{
		Name:        "Latte",
		Category:    domproduct.CategoryCoffee,
		Price:       decimal.RequireFromString("4.50"),
		Stock:       10,
		Image:       "/uploads/latte.jpg",
		IsAvailable: true,
	}
}

func TestCreateProduct_Success(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)

	in := latte()
	in.Name = "  Latte  "
	p, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "Latte", p.Name)
	require.NotNil(t, repo.created)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domproduct.Product)
	}{
		{name: "empty name", mutate: func(p *domproduct.Product) { p.Name = " " }},
		{name: "unknown category", mutate: func(p *domproduct.Product) { p.Category = "Smoothie" }},
		{name: "negative price", mutate: func(p *domproduct.Product) { p.Price = decimal.RequireFromString("-1") }},
		{name: "negative stock", mutate: func(p *domproduct.Product) { p.Stock = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockProductRepository()
			svc := NewService(repo)

			p := latte()
			tt.mutate(p)
			_, err := svc.Create(context.Background(), p)

			require.ErrorIs(t, err, domproduct.ErrInvalidProduct)
			require.Nil(t, repo.created)
		})
	}
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	svc := NewService(newMockProductRepository())

	p := latte()
	p.Price = decimal.Zero
	_, err := svc.Create(context.Background(), p)

	require.NoError(t, err)
}

func TestUpdateProduct_ReplacesFieldsKeepsImage(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), latte())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &domproduct.Product{
		ID:          created.ID,
		Name:        "Flat White",
		Category:    domproduct.CategoryCoffee,
		Price:       decimal.RequireFromString("5.00"),
		Stock:       0,
		IsAvailable: false,
	})

	require.NoError(t, err)
	require.Equal(t, "Flat White", updated.Name)
	require.True(t, decimal.RequireFromString("5").Equal(updated.Price))
	require.Equal(t, int64(0), updated.Stock)
	require.False(t, updated.IsAvailable)
	require.Equal(t, "/uploads/latte.jpg", updated.Image)
}

func TestUpdateProduct_NewImage(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), latte())
	require.NoError(t, err)

	in := latte()
	in.ID = created.ID
	in.Image = "/uploads/latte-2.jpg"
	updated, err := svc.Update(context.Background(), in)

	require.NoError(t, err)
	require.Equal(t, "/uploads/latte-2.jpg", updated.Image)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewService(newMockProductRepository())

	in := latte()
	in.ID = "missing"
	_, err := svc.Update(context.Background(), in)

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestListByCategory(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	_, err := svc.Create(context.Background(), latte())
	require.NoError(t, err)
	tea := latte()
	tea.Name = "Sencha"
	tea.Category = domproduct.CategoryTea
	_, err = svc.Create(context.Background(), tea)
	require.NoError(t, err)

	items, err := svc.ListByCategory(context.Background(), domproduct.CategoryTea)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Sencha", items[0].Name)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Nil(t, repo.lastList.Category)

	_, err = svc.ListByCategory(context.Background(), "Juice")
	require.ErrorIs(t, err, domproduct.ErrInvalidProduct)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), latte())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.Equal(t, created.ID, repo.deletedID)

	_, err = svc.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}
