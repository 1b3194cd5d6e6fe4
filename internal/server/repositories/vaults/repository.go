// Package vaults stores the single sealed vault record of each user.
package vaults

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// Repository holds at most one Vault per user.
type Repository interface {
	// FindByUserID returns the user's vault or common.ErrorNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.Vault, error)

	// Upsert atomically inserts v, or replaces the envelope of the existing
	// record for v.UserID. It reports whether a new record was created and
	// sets v.ID to the identifier of the stored record.
	Upsert(ctx context.Context, v *models.Vault) (inserted bool, err error)
}
