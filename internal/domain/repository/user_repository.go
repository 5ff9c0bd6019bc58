package repository

import (
	"context"
	"errors"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert loses a unique-constraint race.
	// Callers resolve it by re-reading the winner's row.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
