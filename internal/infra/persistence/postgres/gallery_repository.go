package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domgallery "example.com/cafe-admin/internal/domain/gallery"
)

type GalleryRepository struct {
	s *Storage
}

func NewGalleryRepository(s *Storage) *GalleryRepository {
	return &GalleryRepository{s: s}
}

const galleryColumns = `id, title, description, image, featured, display_order, created_at, updated_at`

func scanImage(row pgx.Row) (*domgallery.Image, error) {
	var img domgallery.Image
	if err := row.Scan(&img.ID, &img.Title, &img.Description, &img.Image, &img.Featured,
		&img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *GalleryRepository) Create(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	img.ID = uuid.NewString()
	img.CreatedAt = now()
	img.UpdatedAt = img.CreatedAt

	query := `INSERT INTO gallery_images (` + galleryColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.s.conn(ctx).Exec(ctx, query, img.ID, img.Title, img.Description, img.Image,
		img.Featured, img.DisplayOrder, img.CreatedAt, img.UpdatedAt); err != nil {
		return nil, err
	}
	return img, nil
}

func (r *GalleryRepository) Update(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	if !validID(img.ID) {
		return nil, domgallery.ErrImageNotFound
	}
	img.UpdatedAt = now()

	query := `UPDATE gallery_images
              SET title = $1, description = $2, image = $3, featured = $4, display_order = $5, updated_at = $6
              WHERE id = $7`
	tag, err := r.s.conn(ctx).Exec(ctx, query, img.Title, img.Description, img.Image, img.Featured,
		img.DisplayOrder, img.UpdatedAt, img.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domgallery.ErrImageNotFound
	}
	return img, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domgallery.ErrImageNotFound
	}
	tag, err := r.s.conn(ctx).Exec(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domgallery.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*domgallery.Image, error) {
	if !validID(id) {
		return nil, domgallery.ErrImageNotFound
	}
	row := r.s.conn(ctx).QueryRow(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = $1`, id)

	img, err := scanImage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domgallery.ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *GalleryRepository) List(ctx context.Context, filter domgallery.ListFilter) ([]*domgallery.Image, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_images`
	if filter.OnlyFeatured {
		query += ` WHERE featured`
	}
	query += ` ORDER BY display_order ASC, created_at DESC`

	rows, err := r.s.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*domgallery.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
