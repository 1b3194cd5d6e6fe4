package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
)

type fakeUsers struct {
	registerOut *models.User
	registerErr error

	pair    *services.TokenPair
	pairErr error

	lastEmail, lastPassword, lastRefresh string
}

func (f *fakeUsers) Register(ctx context.Context, email, pw string) (*models.User, error) {
	f.lastEmail, f.lastPassword = email, pw
	return f.registerOut, f.registerErr
}

func (f *fakeUsers) Login(ctx context.Context, email, pw string) (*services.TokenPair, error) {
	f.lastEmail, f.lastPassword = email, pw
	return f.pair, f.pairErr
}

func (f *fakeUsers) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	f.lastRefresh = token
	return f.pair, f.pairErr
}

func (f *fakeUsers) IssueTokenPair(ctx context.Context, user *models.User) (*services.TokenPair, error) {
	return f.pair, f.pairErr
}

type fakeVaults struct {
	storeRes services.StoreResult
	storeErr error

	data        models.VaultData
	retrieveErr error

	url       string
	exportErr error

	envelope     string
	envelopeErr  error
	lastEnvelope string

	lastUserID   string
	lastPassword string
	lastData     models.VaultData
}

func (f *fakeVaults) Store(ctx context.Context, userID, pw string, data models.VaultData) (services.StoreResult, error) {
	f.lastUserID, f.lastPassword, f.lastData = userID, pw, data
	return f.storeRes, f.storeErr
}

func (f *fakeVaults) Retrieve(ctx context.Context, userID, pw string) (models.VaultData, error) {
	f.lastUserID, f.lastPassword = userID, pw
	return f.data, f.retrieveErr
}

func (f *fakeVaults) Export(ctx context.Context, userID string) (string, error) {
	f.lastUserID = userID
	return f.url, f.exportErr
}

func (f *fakeVaults) FetchEnvelope(ctx context.Context, userID string) (string, error) {
	f.lastUserID = userID
	return f.envelope, f.envelopeErr
}

func (f *fakeVaults) PutEnvelope(ctx context.Context, userID, pw, envelope string) (services.StoreResult, error) {
	f.lastUserID, f.lastPassword, f.lastEnvelope = userID, pw, envelope
	return f.storeRes, f.storeErr
}
