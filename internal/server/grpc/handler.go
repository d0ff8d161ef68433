package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cybervault/internal/common"
	pb "github.com/dmitrijs2005/cybervault/internal/vaultpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const statusSuccess = "success"

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	if err := s.recovery.Register(ctx, req.Email, req.SecurityQuestion, req.SecurityAnswer); err != nil {
		return nil, toStatus(err)
	}

	return &pb.RegisterResponse{Status: statusSuccess}, nil
}

func (s *GRPCServer) RequestRecovery(ctx context.Context, req *pb.RecoveryRequest) (*pb.RecoveryResponse, error) {

	if err := s.recovery.RequestRecovery(ctx, req.Email); err != nil {
		return nil, toStatus(err)
	}

	return &pb.RecoveryResponse{Status: statusSuccess, Message: "Recovery email sent"}, nil
}

func (s *GRPCServer) GetVault(ctx context.Context, req *pb.GetVaultRequest) (*pb.GetVaultResponse, error) {

	blob, err := s.vault.GetBlob(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.GetVaultResponse{Blob: []byte(blob)}, nil
}

func (s *GRPCServer) SetVault(ctx context.Context, req *pb.SetVaultRequest) (*pb.SetVaultResponse, error) {

	if err := s.vault.SetBlob(ctx, string(req.Blob)); err != nil {
		return nil, toStatus(err)
	}

	return &pb.SetVaultResponse{Status: statusSuccess}, nil
}

func (s *GRPCServer) Status(ctx context.Context, req *pb.StatusRequest) (*pb.StatusResponse, error) {

	st := s.status.Status()

	return &pb.StatusResponse{
		Status:     st.Status,
		Server:     st.Server,
		Version:    st.Version,
		Encryption: st.Encryption,
		Address:    st.Address,
	}, nil
}

func (s *GRPCServer) SendTestEmail(ctx context.Context, req *pb.TestEmailRequest) (*pb.TestEmailResponse, error) {

	if err := s.recovery.SendTestEmail(ctx, req.Email); err != nil {
		return nil, toStatus(err)
	}

	return &pb.TestEmailResponse{Status: statusSuccess}, nil
}

// toStatus maps service errors to gRPC codes. Internal causes are not
// echoed to the caller.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorInvalidInput):
		return status.Error(codes.InvalidArgument, pb.MessageEmailRequired)
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, pb.MessageEmailNotFound)
	case errors.Is(err, common.ErrorMail):
		return status.Error(codes.Unavailable, pb.MessageMailFailed)
	default:
		return status.Error(codes.Internal, pb.MessageInternal)
	}
}
