package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/netx"
)

// Transfer writes one file to the location its token authorizes.
// Implementations must be safe for concurrent use.
type Transfer interface {
	Upload(ctx context.Context, token models.UploadToken, f models.File) error
}

// HTTPTransfer PUTs the whole file to the token's signed URL.
type HTTPTransfer struct {
	client *http.Client
}

// NewHTTPTransfer uses client for every PUT; nil means http.DefaultClient.
func NewHTTPTransfer(client *http.Client) *HTTPTransfer {
	return &HTTPTransfer{client: client}
}

// Upload reads f fully (files are capped well below memory concerns), tags
// it with the detected content type and writes it. The file is re-opened on
// every call so retries send the full content again.
func (t *HTTPTransfer) Upload(ctx context.Context, token models.UploadToken, f models.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Name(), err)
	}

	contentType := mimetype.Detect(data).String()
	return netx.PutSignedURL(ctx, t.client, token.SignedURL, bytes.NewReader(data), int64(len(data)), contentType)
}
