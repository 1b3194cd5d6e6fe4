package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/common"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       pb.VaultServiceClient
	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	in, encErr := pb.Encode(pb.RefreshTokenRequest{RefreshToken: refresh})
	if encErr != nil {
		return err
	}
	out, rerr := s.client.RefreshToken(ctx, in)
	if rerr != nil {
		return rerr
	}
	var resp pb.TokenResponse
	if derr := pb.Decode(out, &resp); derr != nil {
		return derr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	// tokens refreshed, retry once with the new access token
	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGophVaultClient connects to endpointURL. Nil creds means plaintext.
func NewGophVaultClient(endpointURL string, creds credentials.TransportCredentials) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(creds); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(creds credentials.TransportCredentials) error {
	if creds == nil {
		creds = insecure.NewCredentials()
	}
	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(creds), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewVaultServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

type rpcFunc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

// call encodes req, invokes fn and decodes the reply into resp.
func (s *GRPCClient) call(ctx context.Context, fn rpcFunc, req, resp any) error {
	in, err := pb.Encode(req)
	if err != nil {
		return err
	}
	var trailer metadata.MD
	out, err := fn(ctx, in, grpc.Trailer(&trailer))
	if err != nil {
		err = s.mapError(err)
		if v := trailer.Get(common.RetryAfterHeaderName); len(v) > 0 && errors.Is(err, ErrRateLimited) {
			err = fmt.Errorf("%w (retry in %ss)", err, v[0])
		}
		return err
	}
	return pb.Decode(out, resp)
}

func (s *GRPCClient) Ping(ctx context.Context, echo string) (string, error) {
	var resp pb.PingResponse
	if err := s.call(ctx, s.client.Ping, pb.PingRequest{Echo: echo}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *GRPCClient) Register(ctx context.Context, email string, masterPassword []byte) error {
	var resp pb.TokenResponse
	req := pb.RegisterRequest{Email: email, MasterPassword: string(masterPassword)}
	if err := s.call(ctx, s.client.Register, req, &resp); err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, masterPassword []byte) error {
	var resp pb.TokenResponse
	req := pb.LoginRequest{Email: email, MasterPassword: string(masterPassword)}
	if err := s.call(ctx, s.client.Login, req, &resp); err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) StoreVault(ctx context.Context, masterPassword []byte, vault map[string]pb.Credential) (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	if vault == nil {
		vault = map[string]pb.Credential{}
	}
	var resp pb.StoreVaultResponse
	req := pb.StoreVaultRequest{MasterPassword: string(masterPassword), Vault: vault}
	if err := s.call(ctx, s.client.StoreVault, req, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

func (s *GRPCClient) RetrieveVault(ctx context.Context, masterPassword []byte) (map[string]pb.Credential, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var resp pb.RetrieveVaultResponse
	req := pb.RetrieveVaultRequest{MasterPassword: string(masterPassword)}
	if err := s.call(ctx, s.client.RetrieveVault, req, &resp); err != nil {
		return nil, err
	}
	if resp.Vault == nil {
		resp.Vault = map[string]pb.Credential{}
	}
	return resp.Vault, nil
}

func (s *GRPCClient) ExportVault(ctx context.Context) (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	var resp pb.ExportVaultResponse
	if err := s.call(ctx, s.client.ExportVault, pb.ExportVaultRequest{}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (s *GRPCClient) FetchEnvelope(ctx context.Context) (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	var resp pb.EnvelopeResponse
	if err := s.call(ctx, s.client.FetchEnvelope, pb.FetchEnvelopeRequest{}, &resp); err != nil {
		return "", err
	}
	return resp.Envelope, nil
}

func (s *GRPCClient) PutEnvelope(ctx context.Context, masterPassword []byte, envelope string) (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	var resp pb.PutEnvelopeResponse
	req := pb.PutEnvelopeRequest{MasterPassword: string(masterPassword), Envelope: envelope}
	if err := s.call(ctx, s.client.PutEnvelope, req, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		kind = ErrUnauthorized
	case codes.NotFound:
		kind = ErrNotFound
	case codes.AlreadyExists:
		kind = ErrConflict
	case codes.InvalidArgument:
		if st.Message() == common.ErrorDecryptionFailed.Error() {
			return ErrDecryption
		}
		kind = ErrInvalidInput
	case codes.ResourceExhausted:
		kind = ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", kind, st.Message())
}
