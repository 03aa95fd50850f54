package order

import (
	"time"

	"github.com/shopspring/decimal"

	domorder "example.com/cafe-admin/internal/domain/order"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type CreatedEvent struct {
	Type          string                 `json:"type"`
	OrderID       string                 `json:"orderId"`
	Total         decimal.Decimal        `json:"total"`
	ItemCount     int                    `json:"itemCount"`
	PaymentMethod domorder.PaymentMethod `json:"paymentMethod"`
	OccurredAt    time.Time              `json:"occurredAt"`
}

type StatusChangedEvent struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"orderId"`
	From       domorder.Status `json:"from"`
	To         domorder.Status `json:"to"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func newCreatedEvent(o *domorder.Order) CreatedEvent {
	return CreatedEvent{
		Type:          EventOrderCreated,
		OrderID:       o.ID,
		Total:         o.Total,
		ItemCount:     len(o.Items),
		PaymentMethod: o.PaymentMethod,
		OccurredAt:    time.Now().UTC(),
	}
}

func newStatusChangedEvent(id string, from, to domorder.Status) StatusChangedEvent {
	return StatusChangedEvent{
		Type:       EventOrderStatusChanged,
		OrderID:    id,
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	}
}
