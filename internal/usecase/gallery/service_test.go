package gallery

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	domgallery "example.com/cafe-admin/internal/domain/gallery"
)

type mockGalleryRepository struct {
	images  map[string]*domgallery.Image
	nextID  int
	created bool
	filter  domgallery.ListFilter
}

func newMockGalleryRepository() *mockGalleryRepository {
	return &mockGalleryRepository{images: make(map[string]*domgallery.Image), nextID: 1}
}

func (m *mockGalleryRepository) Create(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	m.created = true
	img.ID = fmt.Sprintf("g%d", m.nextID)
	m.nextID++
	cloned := *img
	m.images[img.ID] = &cloned
	return img, nil
}

func (m *mockGalleryRepository) Update(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	if _, ok := m.images[img.ID]; !ok {
		return nil, domgallery.ErrImageNotFound
	}
	cloned := *img
	m.images[img.ID] = &cloned
	return img, nil
}

func (m *mockGalleryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.images[id]; !ok {
		return domgallery.ErrImageNotFound
	}
	delete(m.images, id)
	return nil
}

func (m *mockGalleryRepository) GetByID(ctx context.Context, id string) (*domgallery.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return nil, domgallery.ErrImageNotFound
	}
	cloned := *img
	return &cloned, nil
}

func (m *mockGalleryRepository) List(ctx context.Context, filter domgallery.ListFilter) ([]*domgallery.Image, error) {
	m.filter = filter
	var result []*domgallery.Image
	for _, img := range m.images {
		if filter.OnlyFeatured && !img.Featured {
			continue
		}
		cloned := *img
		result = append(result, &cloned)
	}
	return result, nil
}

func TestCreateImage(t *testing.T) {
	repo := newMockGalleryRepository()
	svc := NewService(repo)

	img, err := svc.Create(context.Background(), &domgallery.Image{Title: " Terrace ", Image: "/uploads/terrace.jpg"})

	require.NoError(t, err)
	require.Equal(t, "g1", img.ID)
	require.Equal(t, "Terrace", img.Title)
}

func TestCreateImage_RequiresTitleAndImage(t *testing.T) {
	repo := newMockGalleryRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &domgallery.Image{Image: "/uploads/a.jpg"})
	require.ErrorIs(t, err, domgallery.ErrInvalidImage)

	_, err = svc.Create(context.Background(), &domgallery.Image{Title: "Bar"})
	require.ErrorIs(t, err, domgallery.ErrInvalidImage)

	require.False(t, repo.created)
}

func TestUpdateImage_KeepsImagePath(t *testing.T) {
	repo := newMockGalleryRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), &domgallery.Image{
		Title:       "Terrace",
		Description: "summer",
		Image:       "/uploads/terrace.jpg",
		Featured:    true,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &domgallery.Image{
		ID:           created.ID,
		Title:        "Terrace at night",
		DisplayOrder: 3,
	})

	require.NoError(t, err)
	require.Equal(t, "Terrace at night", updated.Title)
	require.Equal(t, "", updated.Description)
	require.False(t, updated.Featured)
	require.Equal(t, 3, updated.DisplayOrder)
	require.Equal(t, "/uploads/terrace.jpg", updated.Image)
}

func TestUpdateImage_Errors(t *testing.T) {
	svc := NewService(newMockGalleryRepository())

	_, err := svc.Update(context.Background(), &domgallery.Image{ID: "g9", Title: "x"})
	require.ErrorIs(t, err, domgallery.ErrImageNotFound)

	_, err = svc.Update(context.Background(), &domgallery.Image{ID: "g9"})
	require.ErrorIs(t, err, domgallery.ErrInvalidImage)
}

func TestListFeatured(t *testing.T) {
	repo := newMockGalleryRepository()
	svc := NewService(repo)
	_, err := svc.Create(context.Background(), &domgallery.Image{Title: "A", Image: "/a.jpg", Featured: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &domgallery.Image{Title: "B", Image: "/b.jpg"})
	require.NoError(t, err)

	featured, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.True(t, repo.filter.OnlyFeatured)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.False(t, repo.filter.OnlyFeatured)
}

func TestDeleteImage(t *testing.T) {
	svc := NewService(newMockGalleryRepository())
	created, err := svc.Create(context.Background(), &domgallery.Image{Title: "A", Image: "/a.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), domgallery.ErrImageNotFound)
}
