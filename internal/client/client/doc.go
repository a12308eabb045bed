// Package client talks to the radicación backend over gRPC.
//
// # Overview
//
// GRPCClient implements the Client interface (and uploader.Backend): it
// manages one connection, injects the access token on every call through a
// unary interceptor, applies a per-request timeout and converts between the
// wire messages of package rpc and the client models.
//
// # Error Handling
//
// gRPC status codes are mapped to sentinel errors that callers can match
// with errors.Is: ErrUnauthorized, ErrUnavailable, ErrNotFound,
// ErrInvalidArgument. A response with success=false becomes ErrRejected.
package client
