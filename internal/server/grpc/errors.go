package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Messages are fixed strings
// so nothing about the failure beyond its kind reaches the caller.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNoVault):
		return status.Error(codes.NotFound, "no vault found for this user")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "invalid master password")
	case errors.Is(err, common.ErrorDecryptionFailed):
		return status.Error(codes.InvalidArgument, common.ErrorDecryptionFailed.Error())
	case errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.AlreadyExists, common.ErrorConflict.Error())
	case errors.Is(err, common.ErrorUnavailable):
		return status.Error(codes.Unavailable, "vault export is not configured")
	case errors.Is(err, common.ErrRefreshTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	default:
		s.logger.Error(ctx, "request failed", "op", op, "error", err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
