package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_AssignsCodeAndStatusOnce(t *testing.T) {
	o := &Order{TotalAmount: decimal.NewFromInt(100)}
	o.Normalize()

	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderID)
	assert.Equal(t, OrderStatusActive, o.Status)

	code := o.OrderID
	o.Status = OrderStatusCompleted
	o.Normalize()
	assert.Equal(t, code, o.OrderID, "code is generated once")
	assert.Equal(t, OrderStatusCompleted, o.Status, "explicit status is kept")
}

func TestNormalize_RecomputesNet(t *testing.T) {
	o := &Order{
		TotalAmount:    decimal.NewFromInt(100),
		TaxAmount:      decimal.NewFromInt(18),
		DiscountAmount: decimal.NewFromInt(10),
		NetAmount:      decimal.NewFromInt(9999), // stale, must be overwritten
	}
	o.Normalize()
	assert.True(t, decimal.NewFromInt(108).Equal(o.NetAmount))

	// Idempotent: a second pass does not drift.
	o.Normalize()
	assert.True(t, decimal.NewFromInt(108).Equal(o.NetAmount))
}

func TestLineTotal(t *testing.T) {
	it := OrderItem{Quantity: 3, Price: decimal.RequireFromString("12.50")}
	assert.True(t, decimal.RequireFromString("37.50").Equal(it.LineTotal()))
}

func TestCodeShapes(t *testing.T) {
	assert.Regexp(t, `^USR-[0-9A-F]{8}$`, NewUserCode())
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, NewOrderCode())
	assert.Regexp(t, `^ADDR-[0-9A-F]{6}$`, NewAddressCode())
}

func TestCodesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c := NewOrderCode()
		assert.False(t, seen[c], c)
		seen[c] = true
	}
}
