package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/vaults"
)

// InMemoryRepositoryManager hands out the same process-local repositories
// regardless of the DBTX passed in. Nothing survives a restart.
type InMemoryRepositoryManager struct {
	users         *users.InMemoryRepository
	vaults        *vaults.InMemoryRepository
	refreshTokens *refreshtokens.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewInMemoryRepository(),
		vaults:        vaults.NewInMemoryRepository(),
		refreshTokens: refreshtokens.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Vaults(dbx.DBTX) vaults.Repository {
	return m.vaults
}

func (m *InMemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

// VaultCount exposes the number of stored vault records.
func (m *InMemoryRepositoryManager) VaultCount() int {
	return m.vaults.Count()
}
