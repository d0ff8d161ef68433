package grpc

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newLoggedServer() (*GRPCServer, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewGRPCServer("", l, nil, nil, nil), &buf
}

func TestLoggingInterceptor_Success(t *testing.T) {
	s, buf := newLoggedServer()
	info := &grpc.UnaryServerInfo{FullMethod: "/cybervault.VaultService/Register"}

	resp, err := s.loggingInterceptor(context.Background(), "secret-answer", info,
		func(ctx context.Context, req interface{}) (interface{}, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Contains(t, buf.String(), "/cybervault.VaultService/Register")
	assert.Contains(t, buf.String(), "code=OK")
	assert.Regexp(t, `request_id=[0-9a-f-]{36}`, buf.String())
	assert.NotContains(t, buf.String(), "secret-answer")
}

func TestLoggingInterceptor_Failure(t *testing.T) {
	s, buf := newLoggedServer()
	info := &grpc.UnaryServerInfo{FullMethod: "/cybervault.VaultService/RequestRecovery"}

	_, err := s.loggingInterceptor(context.Background(), nil, info,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.NotFound, "email not found in database")
		})

	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=NotFound")
}
