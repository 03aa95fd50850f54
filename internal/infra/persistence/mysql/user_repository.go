package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	dom "example.com/cafe-admin/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role_code, created_at`

func scanUser(s rowScanner) (*dom.User, error) {
	var u dom.User
	var roleCode string
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roleCode, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.RoleCode = dom.RoleCode(roleCode)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.RoleCode), u.CreatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*dom.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*dom.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*dom.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return dom.ErrUserNotFound
	}
	return nil
}
