package draftstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-compras/internal/domain"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_GuardaYLee(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleDraft()))

	assert.True(t, mr.Exists(keyPrefix+"d-1"))
	got, err := s.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.SupplierID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Tornillo", got.Lines[0].ArticleName)
}

func TestRedisStore_ExpiraPorTTL(t *testing.T) {
	s, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleDraft()))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, "d-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleDraft()))
	require.NoError(t, s.Delete(ctx, "d-1"))

	_, err := s.Get(ctx, "d-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisStore_JSONCorrupto(t *testing.T) {
	s, mr := newRedisStore(t, time.Hour)
	require.NoError(t, mr.Set(keyPrefix+"roto", "{no-json"))

	_, err := s.Get(context.Background(), "roto")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestConnect_URLInvalida(t *testing.T) {
	_, err := Connect(context.Background(), "http://no-es-redis")
	assert.Error(t, err)
}

func TestConnect_OK(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()
}
