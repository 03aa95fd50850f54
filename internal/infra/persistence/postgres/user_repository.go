package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	dom "example.com/cafe-admin/internal/domain/user"
)

type UserRepository struct {
	s *Storage
}

func NewUserRepository(s *Storage) *UserRepository {
	return &UserRepository{s: s}
}

const userColumns = `id, name, email, password_hash, role_code, created_at`

func scanUser(row pgx.Row) (*dom.User, error) {
	var u dom.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleCode, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = now()

	_, err := r.s.conn(ctx).Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.RoleCode, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*dom.User, error) {
	if !validID(id) {
		return nil, dom.ErrUserNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*dom.User, error) {
	u, err := scanUser(r.s.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*dom.User, error) {
	rows, err := r.s.conn(ctx).Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
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
	if !validID(id) {
		return dom.ErrUserNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dom.ErrUserNotFound
	}
	return nil
}
