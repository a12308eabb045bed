// Package netx performs the direct client-to-storage write against a
// signed URL minted by the backend.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/radicacion/internal/common"
)

// maxErrorBody bounds how much of a failed response is copied into the error.
const maxErrorBody = 512

// PutSignedURL uploads body to url with a PUT request. Any 2xx answer counts
// as success; everything else becomes an error carrying the status and a
// prefix of the response body.
func PutSignedURL(ctx context.Context, client *http.Client, url string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(common.UpsertHeaderName, "true")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
