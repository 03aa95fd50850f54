package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	domcontact "example.com/cafe-admin/internal/domain/contact"
)

// ContactRepository stores the single contact row. The singleton column
// carries a unique key so concurrent seeding cannot create a second row.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, phone, email, address, hours, website, facebook, instagram, twitter, created_at, updated_at`

func (r *ContactRepository) Get(ctx context.Context) (*domcontact.Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE singleton = 1`)

	var c domcontact.Contact
	if err := row.Scan(&c.ID, &c.Phone, &c.Email, &c.Address, &c.Hours, &c.Website,
		&c.SocialMedia.Facebook, &c.SocialMedia.Instagram, &c.SocialMedia.Twitter,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcontact.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO contacts (singleton, `+contactColumns+`)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, c.ID, c.Phone, c.Email, c.Address, c.Hours, c.Website,
		c.SocialMedia.Facebook, c.SocialMedia.Instagram, c.SocialMedia.Twitter,
		c.CreatedAt, c.UpdatedAt)
	if isDuplicate(err) {
		return r.Get(ctx)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	c.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE contacts
        SET phone = ?, email = ?, address = ?, hours = ?, website = ?,
            facebook = ?, instagram = ?, twitter = ?, updated_at = ?
        WHERE id = ?
    `, c.Phone, c.Email, c.Address, c.Hours, c.Website,
		c.SocialMedia.Facebook, c.SocialMedia.Instagram, c.SocialMedia.Twitter,
		c.UpdatedAt, c.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domcontact.ErrContactNotFound
	}
	return c, nil
}
