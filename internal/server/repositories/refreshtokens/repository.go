// Package refreshtokens stores server-side refresh tokens.
//
// Tokens are never persisted in the clear: every implementation keys rows
// by HashToken(token), so a leaked table cannot be replayed.
package refreshtokens

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

type Repository interface {
	// Create stores token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete consumes the token. It returns common.ErrorNotFound when the
	// token was already consumed, which makes rotation single-use.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes tokens that expired before the given instant.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// HashToken returns the hex SHA-256 digest under which token is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
