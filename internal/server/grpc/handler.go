package grpc

import (
	"context"
	"fmt"

	pb "github.com/dmitrijs2005/gophvault/internal/proto"
	"github.com/dmitrijs2005/gophvault/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func decodeRequest(in *structpb.Struct, v any) error {
	if err := pb.Decode(in, v); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	return nil
}

func encodeResponse(v any) (*structpb.Struct, error) {
	out, err := pb.Encode(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

func callerID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *GRPCServer) Ping(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.PingRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	msg := "Pong!"
	if req.Echo != "" {
		msg = fmt.Sprintf("Pong! You said %s!", req.Echo)
	}
	return encodeResponse(pb.PingResponse{Message: msg})
}

func (s *GRPCServer) Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.RegisterRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Email, req.MasterPassword)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	tokens, err := s.users.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return encodeResponse(pb.TokenResponse{
		UserID:       user.ID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (s *GRPCServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.LoginRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	tokens, err := s.users.Login(ctx, req.Email, req.MasterPassword)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}

	return encodeResponse(pb.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (s *GRPCServer) RefreshToken(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req pb.RefreshTokenRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh_token", err)
	}

	return encodeResponse(pb.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

func (s *GRPCServer) StoreVault(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var req pb.StoreVaultRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	var data models.VaultData
	if req.Vault != nil {
		data = make(models.VaultData, len(req.Vault))
		for domain, c := range req.Vault {
			data[domain] = models.LoginInfo(c)
		}
	}

	res, err := s.vaults.Store(ctx, userID, req.MasterPassword, data)
	if err != nil {
		return nil, s.toStatus(ctx, "store_vault", err)
	}

	s.logger.Info(ctx, "Vault saved", "user_id", userID, "result", res.String(), "entries", len(data))
	return encodeResponse(pb.StoreVaultResponse{Result: res.String()})
}

func (s *GRPCServer) RetrieveVault(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var req pb.RetrieveVaultRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	data, err := s.vaults.Retrieve(ctx, userID, req.MasterPassword)
	if err != nil {
		return nil, s.toStatus(ctx, "retrieve_vault", err)
	}

	vault := make(map[string]pb.Credential, len(data))
	for domain, li := range data {
		vault[domain] = pb.Credential(li)
	}
	return encodeResponse(pb.RetrieveVaultResponse{Vault: vault})
}

func (s *GRPCServer) ExportVault(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.vaults.Export(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "export_vault", err)
	}

	s.logger.Info(ctx, "Vault exported", "user_id", userID)
	return encodeResponse(pb.ExportVaultResponse{URL: url})
}

func (s *GRPCServer) FetchEnvelope(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	envelope, err := s.vaults.FetchEnvelope(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "fetch_envelope", err)
	}
	return encodeResponse(pb.EnvelopeResponse{Envelope: envelope})
}

func (s *GRPCServer) PutEnvelope(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var req pb.PutEnvelopeRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	res, err := s.vaults.PutEnvelope(ctx, userID, req.MasterPassword, req.Envelope)
	if err != nil {
		return nil, s.toStatus(ctx, "put_envelope", err)
	}

	s.logger.Info(ctx, "Vault restored", "user_id", userID, "result", res.String())
	return encodeResponse(pb.PutEnvelopeResponse{Result: res.String()})
}
