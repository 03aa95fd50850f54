package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCoffee   Category = "Coffee"
	CategoryTea      Category = "Tea"
	CategoryPastry   Category = "Pastry"
	CategorySandwich Category = "Sandwich"
	CategoryDessert  Category = "Dessert"
	CategoryOther    Category = "Other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategoryPastry, CategorySandwich, CategoryDessert, CategoryOther:
		return true
	default:
		return false
	}
}

type Product struct {
	ID          string
	Name        string
	Category    Category
	Price       decimal.Decimal
	Description string
	Stock       int64
	Image       string
	Featured    bool
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListFilter struct {
	Category *Category
}
