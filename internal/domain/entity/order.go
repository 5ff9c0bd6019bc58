package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// SnapshotLine is one entry of the denormalized audit copy of an order,
// keyed by product name. It is written once at creation from the same loop
// that produces the normalized OrderItem rows and never reconciled later.
type SnapshotLine struct {
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
	Total decimal.Decimal `json:"total"`
}

// Order is an immutable priced record of a purchase. Amounts are fixed-point
// decimals; NetAmount is derived and recomputed on every save via Normalize.
type Order struct {
	ID        int64
	OrderID   string // ORD-XXXXXXXX, generated once
	UserID    int64
	AddressID *int64

	Status OrderStatus

	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal

	ItemsSnapshot map[string]SnapshotLine

	Items []OrderItem

	CreatedAt time.Time
}

// OrderItem references a product with the unit price captured at order time.
// The captured price is frozen; later catalog price changes do not touch it.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal

	ProductName string // joined for rendering, not stored on the row
}

// LineTotal is quantity times the captured unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func NewOrderCode() string {
	return newCode("ORD", 8)
}

// Normalize assigns the order code on first save and recomputes the derived
// net amount. Repositories call it before every write so the invariant
// net = total - discount + tax holds idempotently.
func (o *Order) Normalize() {
	if o.OrderID == "" {
		o.OrderID = NewOrderCode()
	}
	if o.Status == "" {
		o.Status = OrderStatusActive
	}
	o.NetAmount = o.TotalAmount.Add(o.TaxAmount).Sub(o.DiscountAmount)
}
