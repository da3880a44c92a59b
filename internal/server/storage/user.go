package storage

import (
	"context"

	"github.com/iudanet/usersync/internal/models"
)

//go:generate moq -out userstorage_mock.go . UserStorage

// UserStorage defines interface for user persistence
type UserStorage interface {
	// ListUsers returns all users ordered by id
	// Returns empty slice if no users found
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser retrieves user by id
	// Returns ErrUserNotFound if user doesn't exist
	GetUser(ctx context.Context, id int64) (models.User, error)

	// CreateUser inserts a user and assigns its id.
	// A non-empty key makes the call idempotent: a repeated key returns the
	// user stored by the first call with created == false.
	// Returns ErrKeyConflict if the key was used with another name or age
	CreateUser(ctx context.Context, name string, age int, key string) (user models.User, created bool, err error)

	// UpdateUser replaces name and age
	// Returns ErrUserNotFound if user doesn't exist
	UpdateUser(ctx context.Context, id int64, name string, age int) (models.User, error)

	// DeleteUser deletes user by id
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, id int64) error
}
