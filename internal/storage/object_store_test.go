package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justforkidz/siteapi/internal/config"
)

func newTestStore(t *testing.T) *ObjectStore {
	t.Helper()
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:      "http://127.0.0.1:9000",
		AccessKey:     "test",
		SecretKey:     "test",
		Bucket:        "images",
		PublicBaseURL: "https://cdn.justforkidz.example",
		Region:        "us-east-1",
	})
	require.NoError(t, err)
	return store
}

func TestPublicURL(t *testing.T) {
	store := newTestStore(t)

	url := store.PublicURL("gallery/2a4bC6.jpg")
	assert.Equal(t, "https://cdn.justforkidz.example/storage/v1/object/public/images/gallery/2a4bC6.jpg", url)
}

func TestPathFromPublicURLRoundTrip(t *testing.T) {
	store := newTestStore(t)

	path, ok := store.PathFromPublicURL(store.PublicURL("gallery/2a4bC6.jpg"))
	require.True(t, ok)
	assert.Equal(t, "gallery/2a4bC6.jpg", path)
}

func TestPathFromPublicURLRejectsForeignURLs(t *testing.T) {
	store := newTestStore(t)

	for _, url := range []string{
		"",
		"https://elsewhere.example/storage/v1/object/public/images/gallery/a.jpg",
		"https://cdn.justforkidz.example/storage/v1/object/public/other-bucket/gallery/a.jpg",
		"https://cdn.justforkidz.example/storage/v1/object/public/images/",
		"not a url",
	} {
		_, ok := store.PathFromPublicURL(url)
		assert.False(t, ok, "url %q should not derive a path", url)
	}
}

func TestPublicBaseURLTrailingSlash(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:      "127.0.0.1:9000",
		Bucket:        "images",
		PublicBaseURL: "https://cdn.justforkidz.example/",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://cdn.justforkidz.example/storage/v1/object/public/images/gallery/a.png",
		store.PublicURL("gallery/a.png"))
}
