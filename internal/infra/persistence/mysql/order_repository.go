package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domorder "example.com/cafe-admin/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, total, status,
            payment_method, payment_status, notes, created_at, updated_at`

func scanOrder(s rowScanner) (*domorder.Order, error) {
	var o domorder.Order
	if err := s.Scan(&o.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Total,
		&o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create writes the order row and its line items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (_ *domorder.Order, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	o.ID = uuid.NewString()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt

	_, err = tx.ExecContext(ctx, `
        INSERT INTO orders (`+orderColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, o.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Total, o.Status,
		o.PaymentMethod, o.PaymentStatus, o.Notes, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, position, product_id, product_name, unit_price, quantity)
            VALUES (?, ?, ?, ?, ?, ?)
        `, o.ID, i, item.ProductID, item.Name, item.Price, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domorder.ListFilter) ([]*domorder.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if filter.Status != nil {
		query += " WHERE status = ?"
		args = append(args, *filter.Status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*domorder.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Items, err = r.listOrderItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	if o.Items, err = r.listOrderItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders SET notes = ?, payment_method = ?, payment_status = ?, updated_at = ?
        WHERE id = ?
    `, o.Notes, o.PaymentMethod, o.PaymentStatus, now(), o.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domorder.ErrOrderNotFound
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domorder.Status) (*domorder.Order, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?
    `, to, now(), id, from)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domorder.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

// Delete relies on ON DELETE CASCADE for order_items.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domorder.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) listOrderItems(ctx context.Context, orderID string) ([]domorder.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT product_id, product_name, unit_price, quantity
        FROM order_items WHERE order_id = ?
        ORDER BY position
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domorder.OrderItem{}
	for rows.Next() {
		var item domorder.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
