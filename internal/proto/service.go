package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophvault.VaultService"

const (
	VaultService_Ping_FullMethodName          = "/gophvault.VaultService/Ping"
	VaultService_Register_FullMethodName      = "/gophvault.VaultService/Register"
	VaultService_Login_FullMethodName         = "/gophvault.VaultService/Login"
	VaultService_RefreshToken_FullMethodName  = "/gophvault.VaultService/RefreshToken"
	VaultService_StoreVault_FullMethodName    = "/gophvault.VaultService/StoreVault"
	VaultService_RetrieveVault_FullMethodName = "/gophvault.VaultService/RetrieveVault"
	VaultService_ExportVault_FullMethodName   = "/gophvault.VaultService/ExportVault"
	VaultService_FetchEnvelope_FullMethodName = "/gophvault.VaultService/FetchEnvelope"
	VaultService_PutEnvelope_FullMethodName   = "/gophvault.VaultService/PutEnvelope"
)

// VaultServiceServer is implemented by the server transport.
type VaultServiceServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StoreVault(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RetrieveVault(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportVault(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FetchEnvelope(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PutEnvelope(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// VaultServiceClient is the client API for gophvault.VaultService.
type VaultServiceClient interface {
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	StoreVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RetrieveVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ExportVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	FetchEnvelope(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PutEnvelope(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc}
}

func (c *vaultServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_Ping_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_Register_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_Login_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_RefreshToken_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) StoreVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_StoreVault_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) RetrieveVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_RetrieveVault_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) ExportVault(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_ExportVault_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) FetchEnvelope(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_FetchEnvelope_FullMethodName, in, opts...)
}

func (c *vaultServiceClient) PutEnvelope(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, VaultService_PutEnvelope_FullMethodName, in, opts...)
}

// RegisterVaultServiceServer attaches srv to s.
func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

type serverMethod func(VaultServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// VaultService_ServiceDesc is the grpc.ServiceDesc for gophvault.VaultService.
var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(VaultService_Ping_FullMethodName, VaultServiceServer.Ping)},
		{MethodName: "Register", Handler: unaryHandler(VaultService_Register_FullMethodName, VaultServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(VaultService_Login_FullMethodName, VaultServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(VaultService_RefreshToken_FullMethodName, VaultServiceServer.RefreshToken)},
		{MethodName: "StoreVault", Handler: unaryHandler(VaultService_StoreVault_FullMethodName, VaultServiceServer.StoreVault)},
		{MethodName: "RetrieveVault", Handler: unaryHandler(VaultService_RetrieveVault_FullMethodName, VaultServiceServer.RetrieveVault)},
		{MethodName: "ExportVault", Handler: unaryHandler(VaultService_ExportVault_FullMethodName, VaultServiceServer.ExportVault)},
		{MethodName: "FetchEnvelope", Handler: unaryHandler(VaultService_FetchEnvelope_FullMethodName, VaultServiceServer.FetchEnvelope)},
		{MethodName: "PutEnvelope", Handler: unaryHandler(VaultService_PutEnvelope_FullMethodName, VaultServiceServer.PutEnvelope)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophvault.proto",
}
