package vaultpb

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "cybervault.VaultService"

const (
	VaultService_Register_FullMethodName        = "/cybervault.VaultService/Register"
	VaultService_RequestRecovery_FullMethodName = "/cybervault.VaultService/RequestRecovery"
	VaultService_GetVault_FullMethodName        = "/cybervault.VaultService/GetVault"
	VaultService_SetVault_FullMethodName        = "/cybervault.VaultService/SetVault"
	VaultService_Status_FullMethodName          = "/cybervault.VaultService/Status"
	VaultService_SendTestEmail_FullMethodName   = "/cybervault.VaultService/SendTestEmail"
)

// VaultServiceServer is the server API for VaultService.
type VaultServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	RequestRecovery(context.Context, *RecoveryRequest) (*RecoveryResponse, error)
	GetVault(context.Context, *GetVaultRequest) (*GetVaultResponse, error)
	SetVault(context.Context, *SetVaultRequest) (*SetVaultResponse, error)
	Status(context.Context, *StatusRequest) (*StatusResponse, error)
	SendTestEmail(context.Context, *TestEmailRequest) (*TestEmailResponse, error)
}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

// unaryHandler adapts one typed server method to grpc.MethodDesc.
func unaryHandler[Req any, Resp any](fullMethod string, call func(VaultServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(VaultService_Register_FullMethodName, VaultServiceServer.Register),
		},
		{
			MethodName: "RequestRecovery",
			Handler:    unaryHandler(VaultService_RequestRecovery_FullMethodName, VaultServiceServer.RequestRecovery),
		},
		{
			MethodName: "GetVault",
			Handler:    unaryHandler(VaultService_GetVault_FullMethodName, VaultServiceServer.GetVault),
		},
		{
			MethodName: "SetVault",
			Handler:    unaryHandler(VaultService_SetVault_FullMethodName, VaultServiceServer.SetVault),
		},
		{
			MethodName: "Status",
			Handler:    unaryHandler(VaultService_Status_FullMethodName, VaultServiceServer.Status),
		},
		{
			MethodName: "SendTestEmail",
			Handler:    unaryHandler(VaultService_SendTestEmail_FullMethodName, VaultServiceServer.SendTestEmail),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cybervault/vault.proto",
}

// VaultServiceClient is the client API for VaultService.
type VaultServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	RequestRecovery(ctx context.Context, in *RecoveryRequest, opts ...grpc.CallOption) (*RecoveryResponse, error)
	GetVault(ctx context.Context, in *GetVaultRequest, opts ...grpc.CallOption) (*GetVaultResponse, error)
	SetVault(ctx context.Context, in *SetVaultRequest, opts ...grpc.CallOption) (*SetVaultResponse, error)
	Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	SendTestEmail(ctx context.Context, in *TestEmailRequest, opts ...grpc.CallOption) (*TestEmailResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(CallOptions(), opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, VaultService_Register_FullMethodName, in, opts)
}

func (c *vaultServiceClient) RequestRecovery(ctx context.Context, in *RecoveryRequest, opts ...grpc.CallOption) (*RecoveryResponse, error) {
	return invoke[RecoveryResponse](ctx, c.cc, VaultService_RequestRecovery_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetVault(ctx context.Context, in *GetVaultRequest, opts ...grpc.CallOption) (*GetVaultResponse, error) {
	return invoke[GetVaultResponse](ctx, c.cc, VaultService_GetVault_FullMethodName, in, opts)
}

func (c *vaultServiceClient) SetVault(ctx context.Context, in *SetVaultRequest, opts ...grpc.CallOption) (*SetVaultResponse, error) {
	return invoke[SetVaultResponse](ctx, c.cc, VaultService_SetVault_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Status(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, VaultService_Status_FullMethodName, in, opts)
}

func (c *vaultServiceClient) SendTestEmail(ctx context.Context, in *TestEmailRequest, opts ...grpc.CallOption) (*TestEmailResponse, error) {
	return invoke[TestEmailResponse](ctx, c.cc, VaultService_SendTestEmail_FullMethodName, in, opts)
}
