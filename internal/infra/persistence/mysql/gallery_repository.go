package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	domgallery "example.com/cafe-admin/internal/domain/gallery"
)

type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

const galleryColumns = `id, title, description, image, featured, display_order, created_at, updated_at`

func scanImage(s rowScanner) (*domgallery.Image, error) {
	var img domgallery.Image
	if err := s.Scan(&img.ID, &img.Title, &img.Description, &img.Image, &img.Featured,
		&img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *GalleryRepository) Create(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	img.ID = uuid.NewString()
	img.CreatedAt = now()
	img.UpdatedAt = img.CreatedAt

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO gallery_images (`+galleryColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, img.ID, img.Title, img.Description, img.Image, img.Featured,
		img.DisplayOrder, img.CreatedAt, img.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *GalleryRepository) Update(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	img.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE gallery_images
        SET title = ?, description = ?, image = ?, featured = ?, display_order = ?, updated_at = ?
        WHERE id = ?
    `, img.Title, img.Description, img.Image, img.Featured, img.DisplayOrder, img.UpdatedAt, img.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domgallery.ErrImageNotFound
	}
	return img, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domgallery.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*domgallery.Image, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = ?`, id)

	img, err := scanImage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domgallery.ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *GalleryRepository) List(ctx context.Context, filter domgallery.ListFilter) ([]*domgallery.Image, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_images`
	if filter.OnlyFeatured {
		query += " WHERE featured = 1"
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
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
