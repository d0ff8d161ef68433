package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs one line per call with its outcome. Request
// payloads are not logged: they carry security answers and vault blobs.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	start := time.Now()
	l := s.logger.With("request_id", uuid.NewString(), "method", info.FullMethod)

	resp, err := handler(ctx, req)
	code := status.Code(err)

	if err != nil {
		l.Warn(ctx, "call failed", "code", code.String(), "duration", time.Since(start))
	} else {
		l.Info(ctx, "call", "code", code.String(), "duration", time.Since(start))
	}

	return resp, err
}
