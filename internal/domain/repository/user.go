package repository

import (
	"context"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, email, username, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// SyncProfile mirrors identity details onto the profile row on sign-in.
	SyncProfile(ctx context.Context, id int64, username string, active bool) error
}
