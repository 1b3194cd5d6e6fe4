package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	refreshtokensrepo "github.com/dmitrijs2005/gophvault/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/gophvault/internal/server/repositories/users"
	vaultsrepo "github.com/dmitrijs2005/gophvault/internal/server/repositories/vaults"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
	// createSeq is consumed one error per Create call before createErr applies
	createSeq []error
	created   int

	purged   int64
	purgeErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.created++
	if len(f.createSeq) > 0 {
		err := f.createSeq[0]
		f.createSeq = f.createSeq[1:]
		return err
	}
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return f.purged, f.purgeErr
}

type fakeVaultsRepo struct {
	findErr   error
	upsertErr error
}

func (f *fakeVaultsRepo) FindByUserID(ctx context.Context, userID string) (*models.Vault, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return nil, common.ErrorNotFound
}

func (f *fakeVaultsRepo) Upsert(ctx context.Context, v *models.Vault) (bool, error) {
	return false, f.upsertErr
}

type fakeRepoManager struct {
	u usersrepo.Repository
	v vaultsrepo.Repository
	r refreshtokensrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) Vaults(db dbx.DBTX) vaultsrepo.Repository               { return m.v }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }

type fakeExporter struct {
	mu       sync.Mutex
	userID   string
	envelope string
	url      string
	err      error
}

func (f *fakeExporter) Export(ctx context.Context, userID, envelope string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userID = userID
	f.envelope = envelope
	return f.url, f.err
}
