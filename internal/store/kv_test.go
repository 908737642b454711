package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisKV(rdb, "sourcing:"), mr
}

func backends(t *testing.T) map[string]KV {
	kv, _ := newRedisKV(t)
	return map[string]KV{
		"memory":   NewMemoryKV(),
		"redis":    kv,
		"postgres": NewPostgresKV(&fakePgx{}),
	}
}

func TestKV_roundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "apiKey")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "apiKey", []byte("gsk_1")))
			got, err := kv.Get(ctx, "apiKey")
			require.NoError(t, err)
			assert.Equal(t, []byte("gsk_1"), got)

			require.NoError(t, kv.Set(ctx, "apiKey", []byte("gsk_2")))
			got, _ = kv.Get(ctx, "apiKey")
			assert.Equal(t, []byte("gsk_2"), got)

			require.NoError(t, kv.Delete(ctx, "apiKey"))
			_, err = kv.Get(ctx, "apiKey")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, kv.Delete(ctx, "never-set"))
		})
	}
}

func TestRedisKV_prefix(t *testing.T) {
	kv, mr := newRedisKV(t)
	require.NoError(t, kv.Set(context.Background(), "tasks", []byte("[]")))

	v, err := mr.Get("sourcing:tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	var got []string
	found, err := GetJSON(ctx, kv, "tasks", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)

	require.NoError(t, SetJSON(ctx, kv, "tasks", []string{"a", "b"}))
	found, err = GetJSON(ctx, kv, "tasks", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, kv.Set(ctx, "tasks", []byte("{not json")))
	_, err = GetJSON(ctx, kv, "tasks", &got)
	assert.Error(t, err)
}

func TestMemoryKV_copiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	in := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", in))
	in[0] = 'x'

	out, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(out))
	out[0] = 'y'
	again, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}
