package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

// uploadClaims bind a signed URL to one object key.
type uploadClaims struct {
	jwt.RegisteredClaims
	Key string `json:"key"`
}

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore is a process-local ObjectStore for development and tests. It
// serves its own upload endpoint: PresignPut returns a URL under baseURL
// carrying an HS256 token, and ServeHTTP accepts the PUT.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	baseURL string
	secret  []byte
	maxSize int64
	now     func() time.Time
}

// NewMemoryStore returns a store whose upload endpoint rejects bodies larger
// than maxSize bytes.
func NewMemoryStore(baseURL string, secret []byte, maxSize int64) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (s *MemoryStore) PresignPut(_ context.Context, key string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := uploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Key: key,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", key, err)
	}
	return s.baseURL + "/objects/" + url.PathEscape(key) + "?token=" + url.QueryEscape(token), nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a copy of the stored bytes and their content type.
func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), obj.data...), obj.contentType, true
}

// Keys lists the stored keys in order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) verify(token, key string) error {
	var claims uploadClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return ErrInvalidSignature
	}
	if claims.Key != key {
		return ErrInvalidSignature
	}
	return nil
}

// ServeHTTP accepts PUT /objects/<key>?token=... and replaces the object.
func (s *MemoryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.Header().Set("Allow", http.MethodPut)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/objects/"))
	if err != nil || key == "" || !strings.HasPrefix(r.URL.Path, "/objects/") {
		http.NotFound(w, r)
		return
	}
	if err := s.verify(r.URL.Query().Get("token"), key); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.maxSize+1))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.maxSize {
		http.Error(w, common.ErrorFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	s.mu.Lock()
	s.objects[key] = memoryObject{data: data, contentType: r.Header.Get("Content-Type")}
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}
