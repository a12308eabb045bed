// Package storage abstracts the object store radicación files are uploaded
// to. Clients never talk to the store through the server: they PUT to a
// presigned URL, and the server only checks for and removes objects.
package storage

import (
	"context"
	"errors"
	"time"
)

// DefaultURLTTL is how long a signed upload URL stays valid.
const DefaultURLTTL = 15 * time.Minute

var ErrInvalidSignature = errors.New("invalid upload signature")

// ObjectStore is implemented by S3Store, MinioStore and MemoryStore.
type ObjectStore interface {
	// PresignPut returns a URL accepting a single HTTP PUT of the object
	// under key. A repeated PUT to the same key replaces the object.
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
