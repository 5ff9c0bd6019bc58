package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
)

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) Create(ctx context.Context, a *entity.Address) error {
	if a.AddressCode == "" {
		a.AddressCode = entity.NewAddressCode()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, address_code, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.UserID, a.AddressCode, a.Address)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AddressRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*entity.Address, error) {
	a := &entity.Address{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, address_code, address, created_at
		FROM addresses
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err := row.Scan(&a.ID, &a.UserID, &a.AddressCode, &a.Address, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, address_code, address, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Address
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.AddressCode, &a.Address, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddressRepository) Update(ctx context.Context, a *entity.Address) error {
	// address_code is immutable; only the body may change, and only by the owner.
	res, err := r.pool.Exec(ctx, `
		UPDATE addresses
		SET address = $1
		WHERE id = $2 AND user_id = $3
	`, a.Address, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
