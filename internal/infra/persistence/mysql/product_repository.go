package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	domproduct "example.com/cafe-admin/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, category, price, description, stock, image, featured, is_available, created_at, updated_at`

func scanProduct(s rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Stock,
		&p.Image, &p.Featured, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO products (`+productColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.Name, p.Category, p.Price, p.Description, p.Stock,
		p.Image, p.Featured, p.IsAvailable, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE products
        SET name = ?, category = ?, price = ?, description = ?, stock = ?,
            image = ?, featured = ?, is_available = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Category, p.Price, p.Description, p.Stock,
		p.Image, p.Featured, p.IsAvailable, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		query += " WHERE category = ?"
		args = append(args, *filter.Category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
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
