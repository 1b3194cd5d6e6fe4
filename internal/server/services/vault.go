package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/dmitrijs2005/gophvault/internal/server/backup"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// KeyEngine derives vault keys and seals/opens envelopes.
// *cryptox.Engine satisfies it.
type KeyEngine interface {
	DeriveKey(ctx context.Context, password, salt []byte) ([]byte, error)
	Seal(plaintext string, key []byte) (string, error)
	Open(envelope string, key []byte) (string, error)
}

// PasswordVerifier checks a candidate against a stored login hash.
type PasswordVerifier func(candidate, encodedHash string) (bool, error)

// StoreResult tells whether Store created the vault or overwrote it.
type StoreResult int

const (
	StoreResultStored StoreResult = iota + 1
	StoreResultReplaced
)

func (r StoreResult) String() string {
	switch r {
	case StoreResultStored:
		return "stored"
	case StoreResultReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// VaultService keeps one sealed vault per user. The vault key is derived
// from the master password and the user's email on every call and wiped
// before the call returns; nothing key-related is cached.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	engine      KeyEngine
	verify      PasswordVerifier
	exporter    backup.Exporter
}

// NewVaultService builds the coordinator. exporter may be nil, in which
// case Export reports common.ErrorUnavailable.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, engine KeyEngine, exporter backup.Exporter) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		engine:      engine,
		verify:      auth.VerifyPassword,
		exporter:    exporter,
	}
}

// Store checks the master password against the login hash, seals data
// under the derived key and upserts the user's single vault record.
func (s *VaultService) Store(ctx context.Context, userID, masterPassword string, data models.VaultData) (StoreResult, error) {
	if masterPassword == "" || data == nil {
		return 0, common.ErrorInvalidInput
	}
	for domain := range data {
		if strings.TrimSpace(domain) == "" {
			return 0, fmt.Errorf("%w: empty domain name", common.ErrorInvalidInput)
		}
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	ok, err := s.verify(masterPassword, user.PasswordHash)
	if err != nil {
		return 0, common.ErrorInternal
	}
	if !ok {
		return 0, common.ErrorUnauthorized
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrorInvalidInput, err)
	}

	envelope, err := s.seal(ctx, user, masterPassword, string(plaintext))
	if err != nil {
		return 0, err
	}

	inserted, err := s.repomanager.Vaults(s.db).Upsert(ctx, &models.Vault{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		EncryptedData: envelope,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving vault: %w", err)
	}

	if inserted {
		return StoreResultStored, nil
	}
	return StoreResultReplaced, nil
}

// Retrieve opens the user's vault. The master password is not checked
// against the login hash here: a successful open is the proof. Any failure
// to open or decode the envelope is reported as common.ErrorDecryptionFailed.
func (s *VaultService) Retrieve(ctx context.Context, userID, masterPassword string) (models.VaultData, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	vault, err := s.findVault(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	pw := []byte(masterPassword)
	defer common.WipeByteArray(pw)

	key, err := s.engine.DeriveKey(ctx, pw, []byte(user.Email))
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	plaintext, err := s.engine.Open(vault.EncryptedData, key)
	if err != nil {
		return nil, common.ErrorDecryptionFailed
	}

	var data models.VaultData
	if err := json.Unmarshal([]byte(plaintext), &data); err != nil || data == nil {
		return nil, common.ErrorDecryptionFailed
	}
	return data, nil
}

// Export copies the sealed envelope to backup storage and returns a
// time-limited download link. The envelope is never opened.
func (s *VaultService) Export(ctx context.Context, userID string) (string, error) {
	if s.exporter == nil {
		return "", common.ErrorUnavailable
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	vault, err := s.findVault(ctx, user.ID)
	if err != nil {
		return "", err
	}

	url, err := s.exporter.Export(ctx, user.ID, vault.EncryptedData)
	if err != nil {
		return "", fmt.Errorf("error exporting vault: %w", err)
	}
	return url, nil
}

// FetchEnvelope returns the user's sealed vault exactly as stored.
func (s *VaultService) FetchEnvelope(ctx context.Context, userID string) (string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	vault, err := s.findVault(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return vault.EncryptedData, nil
}

// PutEnvelope replaces the user's vault with a previously fetched or
// exported envelope. The envelope is only accepted if it opens under the
// key derived from masterPassword and decodes as a vault, so Retrieve
// keeps working after a restore.
func (s *VaultService) PutEnvelope(ctx context.Context, userID, masterPassword, envelope string) (StoreResult, error) {
	if masterPassword == "" || strings.TrimSpace(envelope) == "" {
		return 0, common.ErrorInvalidInput
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	ok, err := s.verify(masterPassword, user.PasswordHash)
	if err != nil {
		return 0, common.ErrorInternal
	}
	if !ok {
		return 0, common.ErrorUnauthorized
	}

	if err := s.checkEnvelope(ctx, user, masterPassword, envelope); err != nil {
		return 0, err
	}

	inserted, err := s.repomanager.Vaults(s.db).Upsert(ctx, &models.Vault{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		EncryptedData: envelope,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving vault: %w", err)
	}

	if inserted {
		return StoreResultStored, nil
	}
	return StoreResultReplaced, nil
}

func (s *VaultService) checkEnvelope(ctx context.Context, user *models.User, masterPassword, envelope string) error {
	pw := []byte(masterPassword)
	defer common.WipeByteArray(pw)

	key, err := s.engine.DeriveKey(ctx, pw, []byte(user.Email))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	plaintext, err := s.engine.Open(envelope, key)
	if err != nil {
		return common.ErrorDecryptionFailed
	}

	var data models.VaultData
	if err := json.Unmarshal([]byte(plaintext), &data); err != nil || data == nil {
		return common.ErrorDecryptionFailed
	}
	return nil
}

func (s *VaultService) seal(ctx context.Context, user *models.User, masterPassword, plaintext string) (string, error) {
	pw := []byte(masterPassword)
	defer common.WipeByteArray(pw)

	key, err := s.engine.DeriveKey(ctx, pw, []byte(user.Email))
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)

	envelope, err := s.engine.Seal(plaintext, key)
	if err != nil {
		return "", fmt.Errorf("error sealing vault: %w", err)
	}
	return envelope, nil
}

func (s *VaultService) findUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

func (s *VaultService) findVault(ctx context.Context, userID string) (*models.Vault, error) {
	vault, err := s.repomanager.Vaults(s.db).FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNoVault
		}
		return nil, fmt.Errorf("error loading vault: %w", err)
	}
	return vault, nil
}
