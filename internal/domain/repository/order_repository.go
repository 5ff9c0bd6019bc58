package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

// OrderRepository defines order persistence and the read-side aggregation
// used by the dashboard.
type OrderRepository interface {
	// CreateWithItems persists the order, its items, and the snapshot in one
	// transaction. On any failure nothing is written.
	CreateWithItems(ctx context.Context, o *entity.Order) error
	// Update rewrites the amount and status columns, recomputing net_amount.
	Update(ctx context.Context, o *entity.Order) error
	// ListByUser returns the user's orders newest first, items populated.
	// A limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Order, error)
	// StatusCounts returns per-status order counts for the user.
	StatusCounts(ctx context.Context, userID int64) (map[entity.OrderStatus]int, error)
	// NetSum returns the sum of net_amount over the user's orders, zero when
	// there are none.
	NetSum(ctx context.Context, userID int64) (decimal.Decimal, error)
}
