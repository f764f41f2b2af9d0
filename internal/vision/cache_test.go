package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	keywords map[string]string
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{keywords: map[string]string{}}
}

func (f *fakeStore) GetKeyword(imageHash string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.keywords[imageHash], nil
}

func (f *fakeStore) SetKeyword(imageHash, keyword string) error {
	f.keywords[imageHash] = keyword
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestCachedExtractorCachesResult(t *testing.T) {
	inner := &fakeExtractor{keyword: "Sony WH-1000XM5"}
	cached := NewCachedExtractor(inner, newFakeStore())

	img := []byte("photo")
	keyword, err := cached.ExtractKeyword(context.Background(), img, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Sony WH-1000XM5", keyword)

	keyword, err = cached.ExtractKeyword(context.Background(), img, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Sony WH-1000XM5", keyword)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedExtractorStoreErrorDegradesGracefully(t *testing.T) {
	inner := &fakeExtractor{keyword: "Nintendo Switch OLED"}
	store := newFakeStore()
	store.getErr = errors.New("db locked")
	cached := NewCachedExtractor(inner, store)

	keyword, err := cached.ExtractKeyword(context.Background(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Nintendo Switch OLED", keyword)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedExtractorDoesNotCacheFailures(t *testing.T) {
	inner := &fakeExtractor{err: errors.New("all gemini models exhausted")}
	store := newFakeStore()
	cached := NewCachedExtractor(inner, store)

	_, err := cached.ExtractKeyword(context.Background(), []byte("photo"), "image/jpeg")
	require.Error(t, err)
	assert.Empty(t, store.keywords)
}
