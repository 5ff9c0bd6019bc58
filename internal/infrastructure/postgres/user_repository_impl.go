package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, user_id, email, password_hash, full_name, company, gst_number, is_active, is_verified, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.UserID == "" {
		u.UserID = entity.NewUserCode()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, email, password_hash, full_name, company, gst_number, is_active, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, u.UserID, u.Email, u.Password, u.FullName, u.Company, u.GSTNumber, u.IsActive, u.IsVerified)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	// Exact, case-sensitive match; the unique constraint stores email as-is.
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.UserID, &u.Email, &u.Password, &u.FullName, &u.Company,
		&u.GSTNumber, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	// email, user_id and is_active are immutable through this path.
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET full_name = $1, company = $2, gst_number = $3, is_verified = $4, password_hash = $5, updated_at = $6
		WHERE id = $7
	`, u.FullName, u.Company, u.GSTNumber, u.IsVerified, u.Password, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
