package storage

import (
	"context"
	"log/slog"
	"testing"

	"manero/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func TestBlobImageStore_PutAndDelete(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewBlobImageStore(bucket, "https://cdn.example.com/")

	url, err := store.Put(ctx, "products/7.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/7.png", url)

	data, err := bucket.ReadAll(ctx, "products/7.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	attrs, err := bucket.Attributes(ctx, "products/7.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)

	require.NoError(t, store.Delete(ctx, "products/7.png"))
	exists, err := bucket.Exists(ctx, "products/7.png")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(ctx, "products/7.png"), "deleting a missing key is not an error")
}

func TestNewImageStore_DefaultsToMemoryBucket(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	store, err := NewImageStore(Params{
		Lc:     lc,
		Config: &config.Config{},
		Logger: slog.Default(),
	})
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "a.png", "image/png", []byte{1})
	assert.NoError(t, err)

	lc.RequireStart().RequireStop()
}

func TestNewImageStore_InvalidURL(t *testing.T) {
	_, err := NewImageStore(Params{
		Lc:     fxtest.NewLifecycle(t),
		Config: &config.Config{Storage: &config.StorageConfig{BucketURL: "nosuchscheme://bucket"}},
		Logger: slog.Default(),
	})
	assert.Error(t, err)
}

func TestRedactBucketURL(t *testing.T) {
	assert.Equal(t, "file:///tmp/images", redactBucketURL("file:///tmp/images?create_dir=true"))
}
