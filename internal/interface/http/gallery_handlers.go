package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domgallery "example.com/cafe-admin/internal/domain/gallery"
)

type galleryRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Image        string `json:"image" validate:"omitempty,max=512"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"displayOrder"`
}

func (req galleryRequest) toDomain(id string) *domgallery.Image {
	return &domgallery.Image{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
	}
}

func mapGalleryImage(img *domgallery.Image) map[string]any {
	return map[string]any{
		"id":           img.ID,
		"title":        img.Title,
		"description":  img.Description,
		"image":        img.Image,
		"featured":     img.Featured,
		"displayOrder": img.DisplayOrder,
		"createdAt":    img.CreatedAt,
		"updatedAt":    img.UpdatedAt,
	}
}

func writeGallery(w http.ResponseWriter, images []*domgallery.Image) {
	resp := make([]map[string]any, 0, len(images))
	for _, img := range images {
		resp = append(resp, mapGalleryImage(img))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := a.gallerySvc.List(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeGallery(w, images)
}

func (a *API) handleListFeaturedGallery(w http.ResponseWriter, r *http.Request) {
	images, err := a.gallerySvc.ListFeatured(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeGallery(w, images)
}

func (a *API) handleGetGalleryImage(w http.ResponseWriter, r *http.Request) {
	img, err := a.gallerySvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapGalleryImage(img))
}

func (a *API) handleCreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	img, err := a.gallerySvc.Create(r.Context(), req.toDomain(""))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapGalleryImage(img))
}

func (a *API) handleUpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	img, err := a.gallerySvc.Update(r.Context(), req.toDomain(chi.URLParam(r, "id")))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapGalleryImage(img))
}

func (a *API) handleDeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := a.gallerySvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "gallery image deleted"})
}
