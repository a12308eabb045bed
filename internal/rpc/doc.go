// Package rpc is the wire contract of the radicación service.
//
// Messages are plain Go structs encoded with a JSON codec registered under
// the content-subtype "json"; the service descriptor, client stub and server
// registration below follow the shape of generated gRPC code so handlers and
// callers look the same as with protobuf stubs.
//
// The JSON field names are the ones the upload protocol uses on the wire:
// uploadTokens, signedUrl, soporteId, archivosExitosos and so on.
package rpc
