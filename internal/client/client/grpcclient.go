// Package client is the CLI's connection to the CyberVault server.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cybervault/internal/common"
	pb "github.com/dmitrijs2005/cybervault/internal/vaultpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// ErrUnavailable means the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

type GRPCClient struct {
	conn    *grpc.ClientConn
	client  pb.VaultServiceClient
	timeout time.Duration
}

// NewGRPCClient prepares a connection to addr. No I/O happens until the
// first call.
func NewGRPCClient(addr string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{conn: conn, client: pb.NewVaultServiceClient(conn), timeout: timeout}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) Status(ctx context.Context) (*pb.StatusResponse, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	resp, err := c.client.Status(ctx, &pb.StatusRequest{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp, nil
}

func (c *GRPCClient) Register(ctx context.Context, email, question, answer string) error {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.client.Register(ctx, &pb.RegisterRequest{Email: email, SecurityQuestion: question, SecurityAnswer: answer})
	return fromStatus(err)
}

func (c *GRPCClient) RequestRecovery(ctx context.Context, email string) error {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.client.RequestRecovery(ctx, &pb.RecoveryRequest{Email: email})
	return fromStatus(err)
}

func (c *GRPCClient) SendTestEmail(ctx context.Context, email string) error {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.client.SendTestEmail(ctx, &pb.TestEmailRequest{Email: email})
	return fromStatus(err)
}

func (c *GRPCClient) GetVault(ctx context.Context) (string, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	resp, err := c.client.GetVault(ctx, &pb.GetVaultRequest{})
	if err != nil {
		return "", fromStatus(err)
	}
	return string(resp.Blob), nil
}

func (c *GRPCClient) SetVault(ctx context.Context, blob string) error {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err := c.client.SetVault(ctx, &pb.SetVaultRequest{Blob: []byte(blob)})
	return fromStatus(err)
}

// fromStatus turns gRPC status codes back into the shared error values.
// A mail failure is reported by the server as Unavailable, so transport
// unavailability is told apart by the status message.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorInvalidInput, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.Unavailable:
		if st.Message() == pb.MessageMailFailed {
			return fmt.Errorf("%w: %s", common.ErrorMail, st.Message())
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, st.Message())
	}
}
