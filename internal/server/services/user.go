// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/dmitrijs2005/gophvault/internal/server/config"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest master password Register accepts.
const MinPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	tokens                       auth.TokenConfig
	refreshTokenValidityDuration time.Duration
	hashParams                   auth.HashParams
}

type UserServiceOption func(*UserService)

// WithHashParams overrides the login password hashing cost.
func WithHashParams(p auth.HashParams) UserServiceOption {
	return func(s *UserService) { s.hashParams = p }
}

// NewUserService constructs a UserService using repositories and server config.
// db may be nil when the repository manager is in-memory.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, opts ...UserServiceOption) *UserService {
	s := &UserService{
		db:          db,
		repomanager: m,
		tokens: auth.TokenConfig{
			SecretKey: []byte(cfg.SecretKey),
			Issuer:    cfg.TokenIssuer,
			Audience:  cfg.TokenAudience,
			Validity:  cfg.AccessTokenValidityDuration,
		},
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		hashParams:                   auth.DefaultHashParams,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TokenConfig exposes the access token settings so the transport can
// verify what this service issues.
func (s *UserService) TokenConfig() auth.TokenConfig {
	return s.tokens
}

// Register validates the credentials, hashes the master password and creates
// the user. A taken email yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, masterPassword string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email address is required", common.ErrorInvalidInput)
	}
	if len(masterPassword) < MinPasswordLength {
		return nil, fmt.Errorf("%w: master password must be at least %d characters", common.ErrorInvalidInput, MinPasswordLength)
	}

	hash, err := auth.HashPassword(s.hashParams, masterPassword)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the master password against the stored hash and, on
// success, returns a new TokenPair. Unknown emails and wrong passwords are
// both reported as common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, masterPassword string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(masterPassword, user.PasswordHash)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.IssueTokenPair(ctx, user)
}

// IssueTokenPair mints tokens for an already authenticated user.
func (s *UserService) IssueTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	return s.generateTokenPair(ctx, user.ID, user.Email, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading token owner: %w", err)
	}

	var pair *TokenPair
	if err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// consumed by a concurrent refresh
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, user.Email, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// PurgeExpiredRefreshTokens drops refresh tokens that can no longer be used.
func (s *UserService) PurgeExpiredRefreshTokens(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RefreshTokens(s.db).DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error purging refresh tokens: %w", err)
	}
	return n, nil
}

// --- helpers below ---

// withTx runs fn in a transaction when backed by a database, or directly
// against the in-memory repositories otherwise.
func (s *UserService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTxRetry(ctx, s.db, nil, dbx.DefaultTxAttempts, fn)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID, email string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, email, s.tokens)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
