package repository

import (
	"context"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
//
// Create fills in ID and CreatedAt and returns ErrDuplicateUsername when the
// username is taken. GetByUsername, GetByID, Promote and Delete return
// ErrNotFound for absent records. Delete returns ErrProtectedAccount for the
// root admin. Each mutation is atomic.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	ListByCreatedDesc(ctx context.Context) ([]*entity.User, error)
	Promote(ctx context.Context, id int64) (*entity.User, error)
	Delete(ctx context.Context, id int64) (*entity.User, error)
}
