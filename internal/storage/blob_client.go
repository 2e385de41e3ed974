// Package storage wraps the external blob store's REST API.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"luman/internal/domain"
)

// UploadResult describes a stored blob.
type UploadResult struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// BlobClient uploads files to the blob store over HTTP.
type BlobClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewBlobClient creates a blob store client. An empty token is allowed;
// uploads then fail with domain.ErrUnauthorized.
func NewBlobClient(baseURL, token string) *BlobClient {
	return &BlobClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Upload streams body to the store under a unique pathname derived from
// the original filename.
func (c *BlobClient) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: blob store token is not configured", domain.ErrUnauthorized)
	}

	pathname := uniquePathname(filename, contentType)

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(pathname))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)
	if size > 0 {
		req.ContentLength = size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("blob store returned %d: %s", resp.StatusCode, payload)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode blob store response: %w", err)
	}
	if result.Pathname == "" {
		result.Pathname = pathname
	}
	if result.ContentType == "" {
		result.ContentType = contentType
	}

	return &result, nil
}

// uniquePathname prefixes the filename with a UUID so concurrent uploads
// of the same file never collide. Files with no usable extension get one
// inferred from the content type.
func uniquePathname(filename, contentType string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}

	if path.Ext(name) == "" {
		if ext := extensionFor(contentType); ext != "" {
			name += ext
		}
	}

	return fmt.Sprintf("uploads/%s-%s", uuid.NewString(), name)
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/gif"):
		return ".gif"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	case strings.HasPrefix(contentType, "video/mp4"):
		return ".mp4"
	case strings.HasPrefix(contentType, "video/webm"):
		return ".webm"
	case strings.HasPrefix(contentType, "application/pdf"):
		return ".pdf"
	}
	return ""
}
