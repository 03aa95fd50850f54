package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domproduct "example.com/cafe-admin/internal/domain/product"
)

type ProductRepository struct {
	s *Storage
}

func NewProductRepository(s *Storage) *ProductRepository {
	return &ProductRepository{s: s}
}

const productColumns = `id, name, category, price, description, stock, image, featured, is_available, created_at, updated_at`

func scanProduct(row pgx.Row) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Stock,
		&p.Image, &p.Featured, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	query := `INSERT INTO products (` + productColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.s.conn(ctx).Exec(ctx, query, p.ID, p.Name, p.Category, p.Price, p.Description,
		p.Stock, p.Image, p.Featured, p.IsAvailable, p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	if !validID(p.ID) {
		return nil, domproduct.ErrProductNotFound
	}
	p.UpdatedAt = now()

	query := `UPDATE products
              SET name = $1, category = $2, price = $3, description = $4, stock = $5,
                  image = $6, featured = $7, is_available = $8, updated_at = $9
              WHERE id = $10`
	tag, err := r.s.conn(ctx).Exec(ctx, query, p.Name, p.Category, p.Price, p.Description, p.Stock,
		p.Image, p.Featured, p.IsAvailable, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domproduct.ErrProductNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	if !validID(id) {
		return nil, domproduct.ErrProductNotFound
	}
	row := r.s.conn(ctx).QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.Category != nil {
		query += ` WHERE category = $1`
		args = append(args, *filter.Category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*domproduct.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
