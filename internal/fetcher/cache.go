package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/nao1215/uniscout/internal/model"
)

// ContentCache stores raw fetched content by key.
type ContentCache interface {
	GetContent(ctx context.Context, key string) ([]byte, bool, error)
	PutContent(ctx context.Context, key, url string, kind model.ContentKind, body []byte) error
}

// CacheKey returns the content cache key of url for a fetch path.
// HTML markup and document bytes of the same URL use different keys.
func CacheKey(kind model.ContentKind, url string) string {
	prefix := "html"
	if kind != model.KindHTML {
		prefix = "document"
	}
	sum := sha256.Sum256([]byte(prefix + ":" + url))
	return hex.EncodeToString(sum[:])
}

type nopCache struct{}

func (nopCache) GetContent(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (nopCache) PutContent(context.Context, string, string, model.ContentKind, []byte) error {
	return nil
}
