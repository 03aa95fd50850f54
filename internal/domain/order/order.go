package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Completed and Cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "Cash"
	PaymentCreditCard    PaymentMethod = "Credit Card"
	PaymentDebitCard     PaymentMethod = "Debit Card"
	PaymentOnlinePayment PaymentMethod = "Online Payment"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentOnlinePayment:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

// OrderItem is a frozen copy of the product as it was priced when the
// order was created. ProductID is historical, not a live reference.
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int64
	Price     decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is the aggregate root. Items, Total and Customer never change
// after creation.
type Order struct {
	ID            string
	Customer      Customer
	Items         []OrderItem
	Total         decimal.Decimal
	Status        Status
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ListFilter struct {
	Status *Status
}
