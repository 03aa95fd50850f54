package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domorder "example.com/cafe-admin/internal/domain/order"
)

type OrderRepository struct {
	s *Storage
}

func NewOrderRepository(s *Storage) *OrderRepository {
	return &OrderRepository{s: s}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, total, status,
                      payment_method, payment_status, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*domorder.Order, error) {
	var o domorder.Order
	if err := row.Scan(&o.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Total,
		&o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Items = []domorder.OrderItem{}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt

	err := r.s.RunInTx(ctx, func(ctx context.Context) error {
		query := `INSERT INTO orders (` + orderColumns + `)
                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		if _, err := r.s.conn(ctx).Exec(ctx, query, o.ID, o.Customer.Name, o.Customer.Email,
			o.Customer.Phone, o.Total, o.Status, o.PaymentMethod, o.PaymentStatus, o.Notes,
			o.CreatedAt, o.UpdatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range o.Items {
			batch.Queue(`INSERT INTO order_items (order_id, position, product_id, product_name, unit_price, quantity)
                         VALUES ($1, $2, $3, $4, $5, $6)`,
				o.ID, i, item.ProductID, item.Name, item.Price, item.Quantity)
		}
		if err := r.s.conn(ctx).SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domorder.ListFilter) ([]*domorder.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.s.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*domorder.Order{}
	byID := make(map[string]*domorder.Order)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if err := r.attachItems(ctx, ids, byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	if !validID(id) {
		return nil, domorder.ErrOrderNotFound
	}
	row := r.s.conn(ctx).QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	if err := r.attachItems(ctx, []string{o.ID}, map[string]*domorder.Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, ids []string, byID map[string]*domorder.Order) error {
	rows, err := r.s.conn(ctx).Query(ctx, `
        SELECT order_id, product_id, product_name, unit_price, quantity
        FROM order_items
        WHERE order_id = ANY($1::text[]::uuid[])
        ORDER BY order_id, position`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item domorder.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	if !validID(o.ID) {
		return nil, domorder.ErrOrderNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `
        UPDATE orders SET notes = $1, payment_method = $2, payment_status = $3, updated_at = $4
        WHERE id = $5`, o.Notes, o.PaymentMethod, o.PaymentStatus, now(), o.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domorder.ErrOrderNotFound
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domorder.Status) (*domorder.Order, error) {
	if !validID(id) {
		return nil, domorder.ErrOrderNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `
        UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, now(), id, from)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domorder.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domorder.ErrOrderNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domorder.ErrOrderNotFound
	}
	return nil
}
