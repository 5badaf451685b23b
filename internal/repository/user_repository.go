package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

// UserRepository defines persistence access for reporters.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByFacebookID(ctx context.Context, fbID string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (fb_id, name)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.FacebookID,
		user.Name,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByFacebookID(ctx context.Context, fbID string) (*domain.User, error) {
	const query = `
        SELECT id, fb_id, name, created_at
        FROM users WHERE fb_id=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, fbID).Scan(
		&user.ID,
		&user.FacebookID,
		&user.Name,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
