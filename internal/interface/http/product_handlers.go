package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	domproduct "example.com/cafe-admin/internal/domain/product"
)

type productRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`
	Stock       int64            `json:"stock" validate:"gte=0"`
	Image       string           `json:"image"`
	Featured    bool             `json:"featured"`
	IsAvailable *bool            `json:"isAvailable"`
}

func (req productRequest) toDomain(id string) *domproduct.Product {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &domproduct.Product{
		ID:          id,
		Name:        req.Name,
		Category:    domproduct.Category(req.Category),
		Price:       *req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		Image:       req.Image,
		Featured:    req.Featured,
		IsAvailable: available,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"category":    p.Category,
		"price":       p.Price.InexactFloat64(),
		"description": p.Description,
		"stock":       p.Stock,
		"image":       p.Image,
		"featured":    p.Featured,
		"isAvailable": p.IsAvailable,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func writeProducts(w http.ResponseWriter, products []*domproduct.Product) {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.productSvc.List(r.Context())
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeProducts(w, products)
}

func (a *API) handleListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := domproduct.Category(chi.URLParam(r, "category"))
	products, err := a.productSvc.ListByCategory(r.Context(), category)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeProducts(w, products)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	product, err := a.productSvc.Create(r.Context(), req.toDomain(""))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(product))
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	product, err := a.productSvc.Update(r.Context(), req.toDomain(chi.URLParam(r, "id")))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(product))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.productSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
