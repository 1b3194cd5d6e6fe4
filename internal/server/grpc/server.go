// Package grpc exposes the vault services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophvault/internal/logging"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// UserService is the identity part of the server used by the transport.
type UserService interface {
	Register(ctx context.Context, email, masterPassword string) (*models.User, error)
	Login(ctx context.Context, email, masterPassword string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	IssueTokenPair(ctx context.Context, user *models.User) (*services.TokenPair, error)
}

// VaultService is the vault coordinator used by the transport.
type VaultService interface {
	Store(ctx context.Context, userID, masterPassword string, data models.VaultData) (services.StoreResult, error)
	Retrieve(ctx context.Context, userID, masterPassword string) (models.VaultData, error)
	Export(ctx context.Context, userID string) (string, error)
	FetchEnvelope(ctx context.Context, userID string) (string, error)
	PutEnvelope(ctx context.Context, userID, masterPassword, envelope string) (services.StoreResult, error)
}

type GRPCServer struct {
	address string
	users   UserService
	vaults  VaultService
	logger  logging.Logger
	tokens  auth.TokenConfig
	limiter *ratelimit.Limiter
	creds   credentials.TransportCredentials
}

func NewGRPCServer(a string, l logging.Logger, us UserService, vs VaultService, tokens auth.TokenConfig, limiter *ratelimit.Limiter) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		vaults:  vs,
		tokens:  tokens,
		limiter: limiter,
	}
}

// SetCredentials makes the server speak TLS. Nil keeps it plaintext.
func (s *GRPCServer) SetCredentials(creds credentials.TransportCredentials) {
	s.creds = creds
}

// NewServer builds a *grpc.Server with the service and interceptors
// registered, without binding a listener.
func (s *GRPCServer) NewServer() *grpc.Server {
	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	)}
	if s.creds != nil {
		opts = append(opts, grpc.Creds(s.creds))
	}
	srv := grpc.NewServer(opts...)
	pb.RegisterVaultServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String(), "tls", s.creds != nil)

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
