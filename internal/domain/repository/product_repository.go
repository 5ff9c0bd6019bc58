package repository

import (
	"context"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

// ProductRepository defines catalog reads plus the single create used by the
// products endpoint. Products are never mutated by the order flow.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListActive(ctx context.Context) ([]entity.Product, error)
}
