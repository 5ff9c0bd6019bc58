package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateWithItems writes the order row, every item row, and the snapshot in a
// single transaction. A failure at any point rolls the whole order back.
func (r *OrderRepository) CreateWithItems(ctx context.Context, o *entity.Order) error {
	o.Normalize()

	snap, err := json.Marshal(o.ItemsSnapshot)
	if err != nil {
		return fmt.Errorf("marshal items snapshot: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (order_id, user_id, address_id, status, total_amount, tax_amount, discount_amount, net_amount, items_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, o.OrderID, o.UserID, o.AddressID, o.Status, o.TotalAmount, o.TaxAmount, o.DiscountAmount, o.NetAmount, snap)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, it.OrderID, it.ProductID, it.Quantity, it.Price).Scan(&it.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites amounts and status, re-deriving net_amount on the way in.
func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) error {
	o.Normalize()

	res, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $1, total_amount = $2, tax_amount = $3, discount_amount = $4, net_amount = $5
		WHERE id = $6
	`, o.Status, o.TotalAmount, o.TaxAmount, o.DiscountAmount, o.NetAmount, o.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Order, error) {
	query := `
		SELECT id, order_id, user_id, address_id, status, total_amount, tax_amount, discount_amount, net_amount, items_snapshot, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	var ids []int64
	for rows.Next() {
		var o entity.Order
		var snap []byte
		if err := rows.Scan(&o.ID, &o.OrderID, &o.UserID, &o.AddressID, &o.Status, &o.TotalAmount,
			&o.TaxAmount, &o.DiscountAmount, &o.NetAmount, &snap, &o.CreatedAt); err != nil {
			return nil, err
		}
		if len(snap) > 0 {
			if err := json.Unmarshal(snap, &o.ItemsSnapshot); err != nil {
				return nil, fmt.Errorf("unmarshal items snapshot: %w", err)
			}
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) itemsForOrders(ctx context.Context, orderIDs []int64) (map[int64][]entity.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]entity.OrderItem, len(orderIDs))
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.ProductName); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *OrderRepository) StatusCounts(ctx context.Context, userID int64) (map[entity.OrderStatus]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE user_id = $1
		GROUP BY status
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[entity.OrderStatus]int)
	for rows.Next() {
		var status entity.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *OrderRepository) NetSum(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(net_amount), 0)
		FROM orders
		WHERE user_id = $1
	`, userID).Scan(&sum)
	return sum, err
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
