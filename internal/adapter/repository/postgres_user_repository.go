package repository

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &postgresUserRepository{pool: pool}
}

const userColumns = `id, COALESCE(firebase_uid, ''), username, first_name, last_name, email, phone, avatar_url, is_buyer, is_seller`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.Phone, &u.AvatarURL, &u.IsBuyer, &u.IsSeller)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to scan user", err)
	}
	return &u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *postgresUserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE firebase_uid = $1`, uid)
	return scanUser(row)
}
