package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domorder "example.com/cafe-admin/internal/domain/order"
	orderuc "example.com/cafe-admin/internal/usecase/order"
)

const idempotencyHeader = "Idempotency-Key"

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// orderItemRequest accepts the product id as "productId" or, for older
// clients, as "product".
type orderItemRequest struct {
	ProductID string `json:"productId"`
	Product   string `json:"product"`
	Quantity  int64  `json:"quantity"`
}

func (i orderItemRequest) productID() string {
	if i.ProductID != "" {
		return i.ProductID
	}
	return i.Product
}

type createOrderRequest struct {
	Customer      *customerRequest   `json:"customer"`
	Items         []orderItemRequest `json:"items"`
	Notes         string             `json:"notes" validate:"max=2000"`
	PaymentMethod string             `json:"paymentMethod"`
}

type updateOrderRequest struct {
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
	PaymentMethod *string `json:"paymentMethod"`
	PaymentStatus *string `json:"paymentStatus"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"product":  it.ProductID,
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    it.Price.InexactFloat64(),
		})
	}
	return map[string]any{
		"id": o.ID,
		"customer": map[string]string{
			"name":  o.Customer.Name,
			"email": o.Customer.Email,
			"phone": o.Customer.Phone,
		},
		"items":         items,
		"total":         o.Total.InexactFloat64(),
		"status":        o.Status,
		"paymentMethod": o.PaymentMethod,
		"paymentStatus": o.PaymentStatus,
		"notes":         o.Notes,
		"createdAt":     o.CreatedAt,
		"updatedAt":     o.UpdatedAt,
	}
}

func writeOrders(w http.ResponseWriter, orders []*domorder.Order) {
	resp := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, mapOrder(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var filter domorder.ListFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := domorder.Status(s)
		filter.Status = &status
	}

	orders, err := a.orderSvc.List(r.Context(), filter)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func (a *API) handleListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status := domorder.Status(chi.URLParam(r, "status"))
	orders, err := a.orderSvc.List(r.Context(), domorder.ListFilter{Status: &status})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func (a *API) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.orderSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (a *API) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := orderuc.CreateInput{
		Notes:          req.Notes,
		PaymentMethod:  domorder.PaymentMethod(req.PaymentMethod),
		IdempotencyKey: strings.TrimSpace(r.Header.Get(idempotencyHeader)),
	}
	if req.Customer != nil {
		in.Customer = &domorder.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		}
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, orderuc.ItemInput{
			ProductID: it.productID(),
			Quantity:  it.Quantity,
		})
	}

	o, err := a.orderSvc.Create(r.Context(), in)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrder(o))
}

func (a *API) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := orderuc.UpdateInput{
		ID:    chi.URLParam(r, "id"),
		Notes: req.Notes,
	}
	if req.PaymentMethod != nil {
		m := domorder.PaymentMethod(*req.PaymentMethod)
		in.PaymentMethod = &m
	}
	if req.PaymentStatus != nil {
		s := domorder.PaymentStatus(*req.PaymentStatus)
		in.PaymentStatus = &s
	}

	o, err := a.orderSvc.Update(r.Context(), in)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (a *API) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	o, err := a.orderSvc.SetStatus(r.Context(), chi.URLParam(r, "id"), domorder.Status(req.Status))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (a *API) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := a.orderSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
