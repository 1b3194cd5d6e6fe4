// Package users declares the server-side repository contract for user
// accounts and its PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// Repository stores users. Email is unique: Create returns
// common.ErrorConflict on a duplicate. Lookups of absent users return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
