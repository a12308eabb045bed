package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio answers the handful of S3 calls MinioStore makes.
type fakeMinio struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

func (f *fakeMinio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodHead:
		if !f.objects[path] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", "4")
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
		w.Header().Set("Content-Type", "application/pdf")
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, path)
		f.deleted = append(f.deleted, path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newMinioStore(t *testing.T, fake *fakeMinio) *MinioStore {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	s, err := NewMinioStore(MinioConfig{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		Bucket:    "radicaciones",
	})
	require.NoError(t, err)
	return s
}

func TestMinioStore_PresignPut(t *testing.T) {
	s := newMinioStore(t, &fakeMinio{})
	url, err := s.PresignPut(context.Background(), "radicaciones/s-1/otros/001-a.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "/radicaciones/radicaciones/s-1/otros/001-a.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestMinioStore_ExistsAndDelete(t *testing.T) {
	fake := &fakeMinio{objects: map[string]bool{"radicaciones/a/b.pdf": true}}
	s := newMinioStore(t, fake)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "a/b.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "a/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "a/b.pdf"))
	assert.Equal(t, []string{"radicaciones/a/b.pdf"}, fake.deleted)

	ok, err = s.Exists(ctx, "a/b.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMinioStore_StatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	s, err := NewMinioStore(MinioConfig{
		Endpoint: strings.TrimPrefix(srv.URL, "http://"),
		Region:   "us-east-1",
		Bucket:   "radicaciones",
	})
	require.NoError(t, err)

	_, err = s.Exists(context.Background(), "k")
	require.Error(t, err)
}
