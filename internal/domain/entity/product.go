package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The order processor reads it but never mutates it.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Category string
	IsActive bool

	CreatedAt time.Time
}
