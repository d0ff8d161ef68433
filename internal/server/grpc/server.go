package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/dmitrijs2005/cybervault/internal/server/services"
	pb "github.com/dmitrijs2005/cybervault/internal/vaultpb"
	"google.golang.org/grpc"
)

type RecoveryService interface {
	Register(ctx context.Context, email, question, answer string) error
	RequestRecovery(ctx context.Context, email string) error
	SendTestEmail(ctx context.Context, email string) error
}

type VaultService interface {
	GetBlob(ctx context.Context) (string, error)
	SetBlob(ctx context.Context, blob string) error
}

type StatusService interface {
	Status() services.Status
}

type GRPCServer struct {
	address  string
	recovery RecoveryService
	vault    VaultService
	status   StatusService
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, rs RecoveryService, vs VaultService, ss StatusService) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		recovery: rs,
		vault:    vs,
		status:   ss,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	opts := append(pb.ServerOptions(), grpc.ChainUnaryInterceptor(s.loggingInterceptor))
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

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully, letting in-flight calls finish.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
