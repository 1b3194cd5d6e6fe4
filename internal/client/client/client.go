package client

import (
	"context"

	pb "github.com/dmitrijs2005/gophvault/internal/proto"
)

type Client interface {
	Close() error
	Ping(ctx context.Context, echo string) (string, error)
	Register(ctx context.Context, email string, masterPassword []byte) error
	Login(ctx context.Context, email string, masterPassword []byte) error
	Logout()
	LoggedIn() bool
	StoreVault(ctx context.Context, masterPassword []byte, vault map[string]pb.Credential) (string, error)
	RetrieveVault(ctx context.Context, masterPassword []byte) (map[string]pb.Credential, error)
	ExportVault(ctx context.Context) (string, error)
	FetchEnvelope(ctx context.Context) (string, error)
	PutEnvelope(ctx context.Context, masterPassword []byte, envelope string) (string, error)
}
