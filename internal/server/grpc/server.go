// Package grpc exposes the submission service over gRPC with the JSON codec
// registered by package rpc.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/rpc"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
)

// SubmissionService is the business logic behind Initiate and Finalize.
type SubmissionService interface {
	Initiate(ctx context.Context, userID string, meta services.Metadata, manifest []services.ManifestEntry) (*services.InitiateOutput, error)
	Finalize(ctx context.Context, userID, radicado string) (*services.FinalizeOutput, error)
}

type GRPCServer struct {
	rpc.UnimplementedRadicacionServiceServer
	address     string
	submissions SubmissionService
	logger      logging.Logger
	jwtSecret   []byte
}

func NewGRPCServer(address string, l logging.Logger, submissions SubmissionService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:     address,
		logger:      l.With("module", "grpc_server"),
		submissions: submissions,
		jwtSecret:   []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the interceptors and the service
// registered, ready to Serve on any listener.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(s.accessTokenInterceptor)}, opts...)
	srv := grpc.NewServer(opts...)
	rpc.RegisterRadicacionServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
