package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domcontact "example.com/cafe-admin/internal/domain/contact"
)

type ContactRepository struct {
	s *Storage
}

func NewContactRepository(s *Storage) *ContactRepository {
	return &ContactRepository{s: s}
}

const contactColumns = `id, phone, email, address, hours, website, facebook, instagram, twitter, created_at, updated_at`

func (r *ContactRepository) Get(ctx context.Context) (*domcontact.Contact, error) {
	row := r.s.conn(ctx).QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE singleton`)

	var c domcontact.Contact
	if err := row.Scan(&c.ID, &c.Phone, &c.Email, &c.Address, &c.Hours, &c.Website,
		&c.SocialMedia.Facebook, &c.SocialMedia.Instagram, &c.SocialMedia.Twitter,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domcontact.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts the singleton row. A concurrent seed that lost the race
// returns the row that won.
func (r *ContactRepository) Create(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	query := `INSERT INTO contacts (singleton, ` + contactColumns + `)
              VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              ON CONFLICT (singleton) DO NOTHING`
	tag, err := r.s.conn(ctx).Exec(ctx, query, c.ID, c.Phone, c.Email, c.Address, c.Hours, c.Website,
		c.SocialMedia.Facebook, c.SocialMedia.Instagram, c.SocialMedia.Twitter, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return r.Get(ctx)
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	if !validID(c.ID) {
		return nil, domcontact.ErrContactNotFound
	}
	c.UpdatedAt = now()

	query := `UPDATE contacts
              SET phone = $1, email = $2, address = $3, hours = $4, website = $5,
                  facebook = $6, instagram = $7, twitter = $8, updated_at = $9
              WHERE id = $10`
	tag, err := r.s.conn(ctx).Exec(ctx, query, c.Phone, c.Email, c.Address, c.Hours, c.Website,
		c.SocialMedia.Facebook, c.SocialMedia.Instagram, c.SocialMedia.Twitter, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domcontact.ErrContactNotFound
	}
	return c, nil
}
