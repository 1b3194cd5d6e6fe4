package grpc

import (
	"context"
	"errors"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	pb.VaultService_Ping_FullMethodName:         true,
	pb.VaultService_Register_FullMethodName:     true,
	pb.VaultService_Login_FullMethodName:        true,
	pb.VaultService_RefreshToken_FullMethodName: true,
}

// UserIDFromContext returns the caller resolved by the access token
// interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, s.rejectToken(ctx, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.tokens)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, s.rejectToken(ctx, common.ErrTokenExpired.Error())
		}
		return nil, s.rejectToken(ctx, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, userIDKey, claims.UserID)

	return handler(ctx, req)
}

// rejectToken charges a refused token against the peer host's budget, so
// guessing tokens is throttled like guessing passwords.
func (s *GRPCServer) rejectToken(ctx context.Context, msg string) error {
	if s.limiter != nil {
		if err := s.admit(ctx, peerKey(ctx)); err != nil {
			return err
		}
	}
	return status.Error(codes.Unauthenticated, msg)
}

// rateLimitInterceptor admits requests per caller: the user id once
// authenticated, the peer host otherwise.
func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.limiter == nil {
		return handler(ctx, req)
	}

	key, ok := UserIDFromContext(ctx)
	if !ok {
		key = peerKey(ctx)
	}

	if err := s.admit(ctx, key); err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

func (s *GRPCServer) admit(ctx context.Context, key string) error {
	ok, wait := s.limiter.Admit(key)
	if ok {
		return nil
	}

	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	// fails only outside a real RPC
	_ = grpc.SetTrailer(ctx, metadata.Pairs(common.RetryAfterHeaderName, strconv.Itoa(secs)))

	return status.Error(codes.ResourceExhausted, "too many requests, try again later")
}

// peerKey identifies an anonymous caller by host; the port changes with
// every connection.
func peerKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "anonymous"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
