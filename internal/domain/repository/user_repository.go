package repository

import (
	"context"

	"vyzioads/internal/domain/entity"
)

// UserRepository is a read-only view of the external identity store.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*entity.User, error)
}
