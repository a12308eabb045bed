package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "radicacion.v1.RadicacionService"

const (
	InitiateFullMethod = "/" + ServiceName + "/Initiate"
	FinalizeFullMethod = "/" + ServiceName + "/Finalize"
	PingFullMethod     = "/" + ServiceName + "/Ping"
)

// RadicacionServiceClient is the client API of the service.
type RadicacionServiceClient interface {
	Initiate(ctx context.Context, in *InitiateRequest, opts ...grpc.CallOption) (*InitiateResponse, error)
	Finalize(ctx context.Context, in *FinalizeRequest, opts ...grpc.CallOption) (*FinalizeResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type radicacionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRadicacionServiceClient wraps cc. Every call is forced onto the JSON codec.
func NewRadicacionServiceClient(cc grpc.ClientConnInterface) RadicacionServiceClient {
	return &radicacionServiceClient{cc: cc}
}

func (c *radicacionServiceClient) Initiate(ctx context.Context, in *InitiateRequest, opts ...grpc.CallOption) (*InitiateResponse, error) {
	out := new(InitiateResponse)
	if err := c.cc.Invoke(ctx, InitiateFullMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *radicacionServiceClient) Finalize(ctx context.Context, in *FinalizeRequest, opts ...grpc.CallOption) (*FinalizeResponse, error) {
	out := new(FinalizeResponse)
	if err := c.cc.Invoke(ctx, FinalizeFullMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *radicacionServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, PingFullMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// RadicacionServiceServer is the server API of the service.
type RadicacionServiceServer interface {
	Initiate(context.Context, *InitiateRequest) (*InitiateResponse, error)
	Finalize(context.Context, *FinalizeRequest) (*FinalizeResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedRadicacionServiceServer can be embedded to satisfy the
// interface while only some methods are written.
type UnimplementedRadicacionServiceServer struct{}

func (UnimplementedRadicacionServiceServer) Initiate(context.Context, *InitiateRequest) (*InitiateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Initiate not implemented")
}

func (UnimplementedRadicacionServiceServer) Finalize(context.Context, *FinalizeRequest) (*FinalizeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Finalize not implemented")
}

func (UnimplementedRadicacionServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterRadicacionServiceServer(s grpc.ServiceRegistrar, srv RadicacionServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func initiateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(InitiateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RadicacionServiceServer).Initiate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: InitiateFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RadicacionServiceServer).Initiate(ctx, req.(*InitiateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func finalizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FinalizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RadicacionServiceServer).Finalize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FinalizeFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RadicacionServiceServer).Finalize(ctx, req.(*FinalizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RadicacionServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RadicacionServiceServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RadicacionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Initiate", Handler: initiateHandler},
		{MethodName: "Finalize", Handler: finalizeHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "radicacion/v1/radicacion.json",
}
