package vision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog/log"

	"snapscout/internal/storage"
)

// CachedExtractor wraps an Extractor with the SQLite keyword cache keyed by
// image hash. Cache failures are logged and degrade to a plain extraction.
type CachedExtractor struct {
	inner Extractor
	store storage.Store
}

// NewCachedExtractor creates a cached extractor.
func NewCachedExtractor(inner Extractor, store storage.Store) *CachedExtractor {
	return &CachedExtractor{inner: inner, store: store}
}

func hashImage(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// ExtractKeyword implements the Extractor interface with caching.
func (c *CachedExtractor) ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error) {
	hash := hashImage(image)

	if c.store != nil {
		cached, err := c.store.GetKeyword(hash)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check keyword cache")
		} else if cached != "" {
			log.Debug().Str("hash", hash[:16]).Str("keyword", cached).Msg("keyword cache hit")
			return cached, nil
		}
	}

	keyword, err := c.inner.ExtractKeyword(ctx, image, mimeType)
	if err != nil {
		return "", err
	}

	if c.store != nil {
		if err := c.store.SetKeyword(hash, keyword); err != nil {
			log.Warn().Err(err).Msg("failed to cache keyword")
		}
	}
	return keyword, nil
}
