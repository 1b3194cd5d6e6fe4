package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Vault, error) {
	query := `
		SELECT id, user_id, encrypted_data, created_at, updated_at
		FROM vaults
		WHERE user_id = $1
	`
	v := &models.Vault{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&v.ID, &v.UserID, &v.EncryptedData, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

// Upsert relies on the unique index on vaults.user_id, so two concurrent
// first stores for one user collapse into one insert and one update.
// xmax is zero only for a freshly inserted row version.
func (r *PostgresRepository) Upsert(ctx context.Context, v *models.Vault) (bool, error) {
	query := `
		INSERT INTO vaults (id, user_id, encrypted_data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET encrypted_data = EXCLUDED.encrypted_data, updated_at = now()
		RETURNING id, (xmax = 0) AS inserted
	`
	var inserted bool
	if err := r.db.QueryRowContext(ctx, query, v.ID, v.UserID, v.EncryptedData).Scan(&v.ID, &inserted); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return inserted, nil
}
