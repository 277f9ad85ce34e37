package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rental-tracker-backend/internal/logger"
)

// Unary logs each unary RPC and converts panics into Internal errors.
func Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC handler panicked", "method", info.FullMethod, "panic", r)
				err = status.Errorf(codes.Internal, "internal error")
			}
			logRPC(info.FullMethod, start, err)
		}()
		return handler(ctx, req)
	}
}

// Stream is the streaming counterpart of Unary. Health Watch uses it.
func Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC stream panicked", "method", info.FullMethod, "panic", r)
				err = status.Errorf(codes.Internal, "internal error")
			}
			logRPC(info.FullMethod, start, err)
		}()
		return handler(srv, ss)
	}
}

func logRPC(method string, start time.Time, err error) {
	log := logger.WithMethod(method)
	code := status.Code(err)
	if err != nil && code != codes.Canceled {
		log.Warn("gRPC call failed", "code", code.String(), "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return
	}
	log.Debug("gRPC call", "code", code.String(), "duration_ms", time.Since(start).Milliseconds())
}
