package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	keyword string
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractKeyword(ctx context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	return f.keyword, f.err
}

func TestChainShortCircuitsOnFirstSuccess(t *testing.T) {
	first := &fakeExtractor{keyword: "Sony WH-1000XM5"}
	second := &fakeExtractor{keyword: "never used"}
	chain := NewChain(first, second)

	keyword, err := chain.ExtractKeyword(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Sony WH-1000XM5", keyword)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThroughFailures(t *testing.T) {
	first := &fakeExtractor{err: errors.New("quota exceeded")}
	second := &fakeExtractor{keyword: ""}
	third := &fakeExtractor{keyword: "Nintendo Switch OLED"}
	chain := NewChain(first, second, third)

	keyword, err := chain.ExtractKeyword(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Nintendo Switch OLED", keyword)
}

func TestChainCarriesLastError(t *testing.T) {
	first := &fakeExtractor{err: errors.New("quota exceeded")}
	second := &fakeExtractor{err: errors.New("model unavailable")}
	chain := NewChain(first, second)

	_, err := chain.ExtractKeyword(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.ErrorContains(t, err, "model unavailable")
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChain().ExtractKeyword(context.Background(), []byte("img"), "image/jpeg")
	assert.ErrorContains(t, err, "no extraction backends configured")
}

func TestCleanKeyword(t *testing.T) {
	assert.Equal(t, "Sony WH-1000XM5", cleanKeyword("  Sony WH-1000XM5\n"))
	assert.Equal(t, "Sony WH-1000XM5", cleanKeyword("```text\nSony WH-1000XM5\n```"))
	assert.Equal(t, "Sony WH-1000XM5", cleanKeyword(`"Sony WH-1000XM5"`))
	assert.Equal(t, "Sony WH-1000XM5", cleanKeyword("Sony WH-1000XM5\nThis is a popular headphone."))
	assert.Empty(t, cleanKeyword("I cannot identify the product in this image because it is too blurry to make out any details at all"))
}
