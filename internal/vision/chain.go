package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Chain tries a list of extraction backends in order and short-circuits on
// the first usable keyword. When every backend fails, the last failure's
// reason is carried in the returned error.
type Chain struct {
	extractors []Extractor
}

// NewChain creates an ordered fallback chain over the given extractors.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// ExtractKeyword implements the Extractor interface.
func (c *Chain) ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error) {
	lastErr := errors.New("no extraction backends configured")
	for i, extractor := range c.extractors {
		keyword, err := extractor.ExtractKeyword(ctx, image, mimeType)
		if err != nil {
			log.Warn().Err(err).Int("backend", i).Msg("keyword extraction backend failed, trying next")
			lastErr = err
			continue
		}
		if keyword != "" {
			return keyword, nil
		}
		lastErr = errors.New("backend returned an empty keyword")
	}
	return "", fmt.Errorf("keyword extraction failed: %w", lastErr)
}
