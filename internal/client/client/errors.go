package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("radicado not found")
	ErrInvalidArgument = errors.New("invalid request")
	ErrRejected        = errors.New("request rejected by server")
)
