package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcontact "example.com/cafe-admin/internal/domain/contact"
	domgallery "example.com/cafe-admin/internal/domain/gallery"
	domorder "example.com/cafe-admin/internal/domain/order"
	domproduct "example.com/cafe-admin/internal/domain/product"
	domuser "example.com/cafe-admin/internal/domain/user"
	authuc "example.com/cafe-admin/internal/usecase/auth"
	contactuc "example.com/cafe-admin/internal/usecase/contact"
	galleryuc "example.com/cafe-admin/internal/usecase/gallery"
	orderuc "example.com/cafe-admin/internal/usecase/order"
	productuc "example.com/cafe-admin/internal/usecase/product"
	useruc "example.com/cafe-admin/internal/usecase/user"
)

type API struct {
	authSvc    *authuc.Service
	userSvc    *useruc.Service
	productSvc *productuc.Service
	gallerySvc *galleryuc.Service
	contactSvc *contactuc.Service
	orderSvc   *orderuc.Service
	tokenSvc   authuc.TokenService
	pingDB     func(ctx context.Context) error
	logger     *slog.Logger
	validator  *validator.Validate
}

type Dependencies struct {
	AuthService    *authuc.Service
	UserService    *useruc.Service
	ProductService *productuc.Service
	GalleryService *galleryuc.Service
	ContactService *contactuc.Service
	OrderService   *orderuc.Service
	TokenService   authuc.TokenService
	// PingDB backs /health/db. Nil reports the store as unconfigured.
	PingDB func(ctx context.Context) error
	Logger *slog.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		authSvc:    deps.AuthService,
		userSvc:    deps.UserService,
		productSvc: deps.ProductService,
		gallerySvc: deps.GalleryService,
		contactSvc: deps.ContactService,
		orderSvc:   deps.OrderService,
		tokenSvc:   deps.TokenService,
		pingDB:     deps.PingDB,
		logger:     logger,
		validator:  validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/db", a.handleHealthDB)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", a.handleLogin)

		r.Get("/products", a.handleListProducts)
		r.Get("/products/category/{category}", a.handleListProductsByCategory)
		r.Get("/products/{id}", a.handleGetProduct)

		r.Get("/gallery", a.handleListGallery)
		r.Get("/gallery/featured", a.handleListFeaturedGallery)
		r.Get("/gallery/{id}", a.handleGetGalleryImage)

		r.Get("/contact", a.handleGetContact)

		r.Group(func(sr chi.Router) {
			sr.Use(a.authMiddleware)
			sr.Use(a.requireRoles(domuser.RoleCodeAdmin, domuser.RoleCodeStaff))

			sr.Post("/products", a.handleCreateProduct)
			sr.Put("/products/{id}", a.handleUpdateProduct)
			sr.Delete("/products/{id}", a.handleDeleteProduct)

			sr.Post("/gallery", a.handleCreateGalleryImage)
			sr.Put("/gallery/{id}", a.handleUpdateGalleryImage)
			sr.Delete("/gallery/{id}", a.handleDeleteGalleryImage)

			sr.Put("/contact", a.handleUpdateContact)

			sr.Route("/orders", func(rr chi.Router) {
				rr.Get("/", a.handleListOrders)
				rr.Post("/", a.handleCreateOrder)
				rr.Get("/status/{status}", a.handleListOrdersByStatus)
				rr.Get("/{id}", a.handleGetOrder)
				rr.Put("/{id}", a.handleUpdateOrder)
				rr.Patch("/{id}/status", a.handleUpdateOrderStatus)
				rr.Delete("/{id}", a.handleDeleteOrder)
			})

			sr.Route("/users", func(rr chi.Router) {
				rr.Get("/", a.handleListUsers)
				rr.Get("/{id}", a.handleGetUser)

				rr.Group(func(ar chi.Router) {
					ar.Use(a.requireRoles(domuser.RoleCodeAdmin))
					ar.Post("/", a.handleCreateUser)
					ar.Delete("/{id}", a.handleDeleteUser)
				})
			})
		})
	})

	return r
}

func (a *API) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	if a.pingDB == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("database not configured"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.pingDB(ctx); err != nil {
		a.logger.ErrorContext(ctx, "database ping failed", slog.Any("error", err))
		respondError(w, http.StatusServiceUnavailable, errors.New("database unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errInternal = errors.New("internal server error")

// handleDomainError maps domain errors to status codes. Anything unmapped is
// a store failure: the cause is logged and the client sees a generic message.
func (a *API) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domorder.IsValidation(err),
		errors.Is(err, domproduct.ErrInvalidProduct),
		errors.Is(err, domgallery.ErrInvalidImage),
		errors.Is(err, domcontact.ErrInvalidContact),
		errors.Is(err, domuser.ErrInvalidUser),
		errors.Is(err, domuser.ErrInvalidRoleCode),
		errors.Is(err, domuser.ErrInvalidCredential):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domgallery.ErrImageNotFound),
		errors.Is(err, domcontact.ErrContactNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domorder.ErrInvalidTransition):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domuser.ErrForbidden):
		respondError(w, http.StatusForbidden, err)
	default:
		a.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, errInternal)
	}
}
