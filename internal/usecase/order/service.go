package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	domorder "example.com/cafe-admin/internal/domain/order"
	domproduct "example.com/cafe-admin/internal/domain/product"
)

// ProductCatalog resolves a product to its current name and price.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*domproduct.Product, error)
}

// IdempotencyStore remembers which order a client-supplied key produced.
// Get returns an empty id when the key is unknown.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, orderID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	repo        domorder.Repository
	catalog     ProductCatalog
	idempotency IdempotencyStore
	events      EventPublisher
	logger      *slog.Logger
}

type Option func(*Service)

func WithIdempotencyStore(store IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

func WithEventPublisher(pub EventPublisher) Option {
	return func(s *Service) { s.events = pub }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(repo domorder.Repository, catalog ProductCatalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ItemInput struct {
	ProductID string
	Quantity  int64
}

type CreateInput struct {
	Customer       *domorder.Customer
	Items          []ItemInput
	Notes          string
	PaymentMethod  domorder.PaymentMethod
	IdempotencyKey string
}

// Create validates the request, prices every line item from the catalog and
// persists the order in a single write. Nothing is written when any item
// fails validation or does not resolve to a product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domorder.Order, error) {
	if in.Customer == nil ||
		strings.TrimSpace(in.Customer.Name) == "" ||
		strings.TrimSpace(in.Customer.Email) == "" ||
		len(in.Items) == 0 {
		return nil, domorder.ErrMissingDetails
	}

	method := in.PaymentMethod
	if method == "" {
		method = domorder.PaymentCash
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %q", domorder.ErrInvalidPayment, method)
	}

	if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
		return existing, nil
	}

	total := decimal.Zero
	items := make([]domorder.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w (item %d)", domorder.ErrInvalidItem, i+1)
		}

		p, err := s.catalog.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, domproduct.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", domorder.ErrUnknownProduct, productID)
			}
			return nil, fmt.Errorf("look up product %s: %w", productID, err)
		}

		line := domorder.OrderItem{
			ProductID: productID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			Price:     p.Price,
		}
		total = total.Add(line.Subtotal())
		items = append(items, line)
	}

	created, err := s.repo.Create(ctx, &domorder.Order{
		Customer: domorder.Customer{
			Name:  strings.TrimSpace(in.Customer.Name),
			Email: strings.TrimSpace(in.Customer.Email),
			Phone: strings.TrimSpace(in.Customer.Phone),
		},
		Items:         items,
		Total:         total,
		Status:        domorder.StatusPending,
		PaymentMethod: method,
		PaymentStatus: domorder.PaymentPending,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, in.IdempotencyKey, created.ID); err != nil {
			s.logger.WarnContext(ctx, "remember idempotency key",
				slog.String("order_id", created.ID), slog.Any("error", err))
		}
	}

	s.publish(ctx, created.ID, newCreatedEvent(created))
	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", created.ID),
		slog.String("total", created.Total.StringFixed(2)),
		slog.Int("items", len(created.Items)))

	return created, nil
}

// replay returns the order a previous request with the same key created.
// Lookup failures fall through to a normal create.
func (s *Service) replay(ctx context.Context, key string) *domorder.Order {
	if key == "" || s.idempotency == nil {
		return nil
	}
	id, err := s.idempotency.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "idempotency lookup", slog.Any("error", err))
		return nil
	}
	if id == "" {
		return nil
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "idempotency replay",
			slog.String("order_id", id), slog.Any("error", err))
		return nil
	}
	return existing
}

func (s *Service) List(ctx context.Context, filter domorder.ListFilter) ([]*domorder.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domorder.ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus applies one transition of the order state machine.
func (s *Service) SetStatus(ctx context.Context, id string, status domorder.Status) (*domorder.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domorder.ErrInvalidStatus, status)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", domorder.ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated.ID, newStatusChangedEvent(updated.ID, current.Status, updated.Status))
	return updated, nil
}

type UpdateInput struct {
	ID            string
	Notes         *string
	PaymentMethod *domorder.PaymentMethod
	PaymentStatus *domorder.PaymentStatus
}

// Update changes the administrative fields of an order. Items, total,
// customer and status are not touched.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domorder.Order, error) {
	if in.PaymentMethod != nil && !in.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: %q", domorder.ErrInvalidPayment, *in.PaymentMethod)
	}
	if in.PaymentStatus != nil && !in.PaymentStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", domorder.ErrInvalidPaymentStatus, *in.PaymentStatus)
	}

	o, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	if in.PaymentMethod != nil {
		o.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentStatus != nil {
		o.PaymentStatus = *in.PaymentStatus
	}

	return s.repo.Update(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) publish(ctx context.Context, key string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "publish order event",
			slog.String("order_id", key), slog.Any("error", err))
	}
}
