package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/rpc"
)

const DefaultRequestTimeout = 30 * time.Second

type GRPCClient struct {
	endpointURL    string
	conn           *grpc.ClientConn
	client         rpc.RadicacionServiceClient
	accessToken    string
	requestTimeout time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewRadicacionClient dials endpointURL lazily; the first call connects.
// opts are appended to the default dial options.
func NewRadicacionClient(endpointURL, accessToken string, requestTimeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken, requestTimeout: requestTimeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewRadicacionServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.timeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

// Initiate opens a submission and returns one token per manifest file.
func (s *GRPCClient) Initiate(ctx context.Context, req models.InitiateRequest) (*models.InitiateResult, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()

	resp, err := s.client.Initiate(ctx, toInitiateRequest(req))
	if err != nil {
		return nil, s.mapError(err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: initiate", ErrRejected)
	}

	return fromInitiateResponse(resp), nil
}

// Finalize asks the server to reconcile radicado against storage.
func (s *GRPCClient) Finalize(ctx context.Context, radicado string) (*models.FinalizeResult, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()

	resp, err := s.client.Finalize(ctx, &rpc.FinalizeRequest{Radicado: radicado})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromFinalizeResponse(resp), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrTokenExpired.Error() {
			return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
		}
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
