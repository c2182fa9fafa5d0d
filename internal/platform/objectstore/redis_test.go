package objectstore_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/catalog-sync/internal/platform/objectstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitRedisPutGetHead(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := objectstore.NewRedis(client, "objects:")
	ctx := context.TODO()

	err := store.Put(ctx, "acme/de/ABC123.json", []byte(`{"sku":"ABC123"}`), objectstore.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"sku": "ABC123", "url_key": "blue-widget"},
	})
	require.NoError(t, err, "shouldn't return any error")
	assert.True(t, srv.Exists("objects:acme/de/ABC123.json"), "should store object under prefixed key")

	obj, err := store.Get(ctx, "acme/de/ABC123.json")
	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, []byte(`{"sku":"ABC123"}`), obj.Body, "should return body")
	assert.Equal(t, "application/json", obj.ContentType, "should return content type")
	assert.Equal(t, map[string]string{"sku": "ABC123", "url_key": "blue-widget"}, obj.Metadata)

	head, err := store.Head(ctx, "acme/de/ABC123.json")
	require.NoError(t, err, "shouldn't return any error")
	assert.Empty(t, head.Body, "head shouldn't return body")
	assert.Equal(t, "ABC123", head.Metadata["sku"], "head should return metadata")
}

func TestUnitRedisOverwriteDropsOldMetadata(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := objectstore.NewRedis(client, "")
	ctx := context.TODO()

	require.NoError(t, store.Put(ctx, "k", []byte("1"), objectstore.PutOptions{
		Metadata: map[string]string{"sku": "A", "url_key": "old"},
	}))
	require.NoError(t, store.Put(ctx, "k", nil, objectstore.PutOptions{
		ContentType: "application/octet-stream",
		Metadata:    map[string]string{"sku": "A"},
	}))

	obj, err := store.Get(ctx, "k")

	require.NoError(t, err, "shouldn't return any error")
	assert.Empty(t, obj.Body, "should overwrite body")
	assert.Equal(t, map[string]string{"sku": "A"}, obj.Metadata, "should drop old metadata")
}

func TestUnitRedisNotFound(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := objectstore.NewRedis(client, "")

	_, err := store.Get(context.TODO(), "missing")
	require.ErrorIs(t, err, objectstore.ErrNotFound, "get should return not found")

	_, err = store.Head(context.TODO(), "missing")
	require.ErrorIs(t, err, objectstore.ErrNotFound, "head should return not found")
}

func TestUnitRedisError(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	srv.Close()

	store := objectstore.NewRedis(client, "")

	err := store.Put(context.TODO(), "k", []byte("1"), objectstore.PutOptions{})
	require.ErrorContains(t, err, "can't put object", "should return put error")

	_, err = store.Get(context.TODO(), "k")
	require.Error(t, err, "should return get error")
	require.NotErrorIs(t, err, objectstore.ErrNotFound, "connection error isn't not found")
}
