package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
)

var (
	ErrEmptyOrder      = errors.New("order must contain items")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// GSTRate is the fixed tax rate applied to every order total.
var GSTRate = decimal.NewFromFloat(0.18)

// OrderItemInput is one (product, quantity) pair in a cart.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

// DashboardSummary is the read-only rollup over a user's orders.
type DashboardSummary struct {
	TotalOrders     int
	ActiveOrders    int
	CompletedOrders int
	CancelledOrders int
	NetSum          decimal.Decimal
	RecentOrders    []entity.Order
}

// OrderService converts carts into immutable priced orders and serves the
// dashboard aggregation.
type OrderService struct {
	Orders    repository.OrderRepository
	Products  repository.ProductRepository
	Addresses repository.AddressRepository
	Logger    *logrus.Logger
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, addresses repository.AddressRepository, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Products: products, Addresses: addresses, Logger: logger}
}

// Create prices the cart and persists the order atomically. Each product's
// live price is read exactly once; that read feeds both the OrderItem row and
// the snapshot line, freezing the price at order time. A concurrent catalog
// price change mid-loop is a benign race: the snapshot reflects whichever
// price was read.
func (s *OrderService) Create(ctx context.Context, user *entity.User, addressID *int64, items []OrderItemInput) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &entity.Order{
		UserID:        user.ID,
		Status:        entity.OrderStatusActive,
		ItemsSnapshot: make(map[string]entity.SnapshotLine, len(items)),
	}

	// An address that doesn't exist or belongs to another user is treated as
	// absent, not an error; the lenient lookup is deliberate.
	if addressID != nil {
		addr, err := s.Addresses.GetByIDForUser(ctx, *addressID, user.ID)
		switch {
		case err == nil:
			order.AddressID = &addr.ID
		case errors.Is(err, repository.ErrNotFound):
			s.Logger.WithFields(logrus.Fields{
				"address_id": *addressID,
				"user_id":    user.ID,
			}).Debug("address not owned by user, ordering without one")
		default:
			return nil, err
		}
	}

	total := decimal.Zero
	for _, in := range items {
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		line := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(line)

		order.Items = append(order.Items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Price:       product.Price,
		})
		order.ItemsSnapshot[product.Name] = entity.SnapshotLine{
			Qty:   in.Quantity,
			Price: product.Price,
			Total: line,
		}
	}

	order.TotalAmount = total
	order.TaxAmount = total.Mul(GSTRate)
	order.DiscountAmount = decimal.Zero

	if err := s.Orders.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"order_id":   order.OrderID,
		"user_id":    user.ID,
		"net_amount": order.NetAmount.String(),
	}).Info("order created")
	return order, nil
}

// List returns the user's orders newest first, items included.
func (s *OrderService) List(ctx context.Context, userID int64) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID, 0)
}

const recentOrdersLimit = 5

// Dashboard aggregates the user's orders: counts per status, sum of net
// amounts (zero when there are none), and the five most recent orders.
func (s *OrderService) Dashboard(ctx context.Context, userID int64) (*DashboardSummary, error) {
	counts, err := s.Orders.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	netSum, err := s.Orders.NetSum(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.Orders.ListByUser(ctx, userID, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &DashboardSummary{
		TotalOrders:     total,
		ActiveOrders:    counts[entity.OrderStatusActive],
		CompletedOrders: counts[entity.OrderStatusCompleted],
		CancelledOrders: counts[entity.OrderStatusCancelled],
		NetSum:          netSum,
		RecentOrders:    recent,
	}, nil
}
