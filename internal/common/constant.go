// Package common contains shared constants and sentinel errors used across
// radicación components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// UpsertHeaderName is sent with every signed PUT so storage backends that
// distinguish create from overwrite treat a repeated upload as a replace.
const UpsertHeaderName = "x-upsert"

// MaxFileSize is the per-file ceiling enforced on both sides of the protocol.
const MaxFileSize int64 = 10 << 20 // 10 MiB
