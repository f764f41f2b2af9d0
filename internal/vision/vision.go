// Package vision turns a product photo into a short English marketplace
// search keyword via an image-understanding backend.
package vision

import (
	"context"
	"strings"
)

// Extractor turns a product photo into a search keyword.
type Extractor interface {
	// ExtractKeyword returns a short English search phrase (2-6 words,
	// brand + model convention) for the product in the image. A non-nil
	// error means no usable keyword was produced; callers must not forward
	// the result into a marketplace query.
	ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error)
}

// cleanKeyword strips markdown code fences, surrounding quotes and
// whitespace from a model response. Suspiciously long output (likely a
// refusal or explanation) is discarded entirely.
func cleanKeyword(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)

	// Keep only the first line in case the model adds commentary.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	if len(text) > 80 {
		return ""
	}
	return text
}
