package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newOrderFixture() (*OrderService, *fakeOrderRepo, *fakeProductRepo, *fakeAddressRepo) {
	orders := &fakeOrderRepo{netSum: decimal.Zero}
	products := &fakeProductRepo{products: map[int64]entity.Product{
		1: {ID: 1, Name: "Thermal Label Printer", Price: dec("10.00"), IsActive: true},
		2: {ID: 2, Name: "Barcode Scanner", Price: dec("5.00"), IsActive: true},
	}}
	addresses := &fakeAddressRepo{addresses: map[int64]entity.Address{
		7: {ID: 7, UserID: 42, AddressCode: "ADDR-A1B2C3", Address: "12 MG Road"},
	}}
	svc := NewOrderService(orders, products, addresses, testLogger())
	return svc, orders, products, addresses
}

func buyer() *entity.User {
	return &entity.User{ID: 42, Email: "buyer@example.com"}
}

func TestOrderCreate_TotalsAndGST(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()

	// 2 x 10.00 + 1 x 5.00 = 25.00, GST 18% = 4.50, net 29.50
	o, err := svc.Create(context.Background(), buyer(), nil, []OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, dec("25.00").Equal(o.TotalAmount), o.TotalAmount.String())
	assert.True(t, dec("4.5").Equal(o.TaxAmount), o.TaxAmount.String())
	assert.True(t, dec("29.5").Equal(o.NetAmount), o.NetAmount.String())
	assert.True(t, o.DiscountAmount.IsZero())
	assert.Equal(t, entity.OrderStatusActive, o.Status)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.OrderID)
	require.Len(t, orders.created, 1)
}

func TestOrderCreate_SnapshotMirrorsItems(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	o, err := svc.Create(context.Background(), buyer(), nil, []OrderItemInput{
		{ProductID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "Thermal Label Printer", o.Items[0].ProductName)
	assert.True(t, dec("10.00").Equal(o.Items[0].Price))

	line, ok := o.ItemsSnapshot["Thermal Label Printer"]
	require.True(t, ok, "snapshot keyed by product name")
	assert.Equal(t, 3, line.Qty)
	assert.True(t, dec("10.00").Equal(line.Price))
	assert.True(t, dec("30.00").Equal(line.Total))
}

func TestOrderCreate_EmptyCart(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()

	_, err := svc.Create(context.Background(), buyer(), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Empty(t, orders.created)
}

func TestOrderCreate_UnknownProduct(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()

	_, err := svc.Create(context.Background(), buyer(), nil, []OrderItemInput{
		{ProductID: 99, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, orders.created)
}

func TestOrderCreate_InvalidQuantity(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()

	_, err := svc.Create(context.Background(), buyer(), nil, []OrderItemInput{
		{ProductID: 1, Quantity: 0},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, orders.created)
}

func TestOrderCreate_OwnAddressAttached(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	addr := int64(7)
	o, err := svc.Create(context.Background(), buyer(), &addr, []OrderItemInput{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, o.AddressID)
	assert.Equal(t, int64(7), *o.AddressID)
}

func TestOrderCreate_ForeignAddressIgnored(t *testing.T) {
	svc, _, _, addresses := newOrderFixture()
	addresses.addresses[8] = entity.Address{ID: 8, UserID: 99, Address: "someone else's"}

	addr := int64(8)
	o, err := svc.Create(context.Background(), buyer(), &addr, []OrderItemInput{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err, "an address the user does not own is treated as absent")
	assert.Nil(t, o.AddressID)
}

func TestOrderCreate_MissingAddressIgnored(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	addr := int64(123)
	o, err := svc.Create(context.Background(), buyer(), &addr, []OrderItemInput{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Nil(t, o.AddressID)
}

func TestDashboard_CountsAndSum(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()
	orders.counts = map[entity.OrderStatus]int{
		entity.OrderStatusActive:    3,
		entity.OrderStatusCompleted: 2,
		entity.OrderStatusCancelled: 1,
	}
	orders.netSum = dec("177.00")
	orders.listed = []entity.Order{
		{ID: 6, OrderID: "ORD-AAAA0001"},
		{ID: 5, OrderID: "ORD-AAAA0002"},
	}

	sum, err := svc.Dashboard(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 6, sum.TotalOrders)
	assert.Equal(t, 3, sum.ActiveOrders)
	assert.Equal(t, 2, sum.CompletedOrders)
	assert.Equal(t, 1, sum.CancelledOrders)
	assert.True(t, dec("177.00").Equal(sum.NetSum))
	assert.Len(t, sum.RecentOrders, 2)
}

func TestDashboard_EmptyHistory(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	sum, err := svc.Dashboard(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalOrders)
	assert.True(t, sum.NetSum.IsZero(), "net sum is zero, not null, with no orders")
	assert.Empty(t, sum.RecentOrders)
}

func TestDashboard_RecentCappedAtFive(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()
	for i := 0; i < 8; i++ {
		orders.listed = append(orders.listed, entity.Order{ID: int64(8 - i)})
	}

	sum, err := svc.Dashboard(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, sum.RecentOrders, 5)
}
