package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/realty-service/internal/session"
)

func newRedisStorage(t *testing.T, ttl time.Duration) (*session.RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStorage(client, ttl), mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	storage, _ := newRedisStorage(t, 0)
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "tok", []byte(`{"id":1}`)))

	data, err := storage.Read(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"id":1}`), data)
}

func TestRedisStorageMissingKey(t *testing.T) {
	storage, _ := newRedisStorage(t, 0)

	_, err := storage.Read(context.Background(), "absent")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStorageDeleteIdempotent(t *testing.T) {
	storage, _ := newRedisStorage(t, 0)
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "tok", []byte("x")))
	require.NoError(t, storage.Delete(ctx, "tok"))
	require.NoError(t, storage.Delete(ctx, "tok"))

	_, err := storage.Read(ctx, "tok")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStorageTTL(t *testing.T) {
	storage, mr := newRedisStorage(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, storage.Write(ctx, "tok", []byte("x")))

	mr.FastForward(2 * time.Minute)

	_, err := storage.Read(ctx, "tok")
	require.ErrorIs(t, err, session.ErrNotFound)
}
