package repository

import (
	"context"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

// AddressRepository defines address persistence scoped to the owning user.
// Lookups are always constrained by user id so a caller can never read or
// update another user's address.
type AddressRepository interface {
	Create(ctx context.Context, a *entity.Address) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*entity.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Address, error)
	Update(ctx context.Context, a *entity.Address) error
}
