package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// DefaultMaxDocumentSize limits a document download.
const DefaultMaxDocumentSize = 20 * 1024 * 1024

// ErrDocumentTooLarge is returned when a download exceeds the size limit.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// Downloader retrieves the raw bytes of a URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// HTTPDownloader downloads documents with a resty client.
type HTTPDownloader struct {
	client  *resty.Client
	maxSize int64
}

// NewHTTPDownloader creates a downloader. A non-positive maxSize uses
// DefaultMaxDocumentSize.
func NewHTTPDownloader(client *resty.Client, maxSize int64) *HTTPDownloader {
	if maxSize <= 0 {
		maxSize = DefaultMaxDocumentSize
	}
	return &HTTPDownloader{client: client, maxSize: maxSize}
}

// Download implements Downloader.
func (d *HTTPDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download %s: http %d", url, resp.StatusCode())
	}
	body := resp.Body()
	if int64(len(body)) > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrDocumentTooLarge, len(body))
	}
	return body, nil
}
