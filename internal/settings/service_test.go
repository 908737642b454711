package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/sourcing-assistant/backend/internal/models"
	"github.com/ayush/sourcing-assistant/backend/internal/store"
)

const testSecret = "0123456789abcdef-test"

func TestGet_defaults(t *testing.T) {
	s, err := NewService(store.NewMemoryKV(), nil).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", s.APIKey)
	assert.Equal(t, DefaultSystemPrompt, s.SystemPrompt)
}

func TestSave_trimsAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil)

	saved, err := svc.Save(ctx, models.Settings{APIKey: "  gsk_abc \n", SystemPrompt: "   "})
	require.NoError(t, err)
	assert.Equal(t, models.Settings{APIKey: "gsk_abc", SystemPrompt: DefaultSystemPrompt}, saved)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = svc.Save(ctx, models.Settings{APIKey: "gsk_abc", SystemPrompt: " Be brief. "})
	require.NoError(t, err)
	got, _ = svc.Get(ctx)
	assert.Equal(t, "Be brief.", got.SystemPrompt)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryKV(), nil)
	_, err := svc.Save(ctx, models.Settings{APIKey: "gsk_abc", SystemPrompt: "custom"})
	require.NoError(t, err)

	reset, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Settings{SystemPrompt: DefaultSystemPrompt}, reset)

	key, err := svc.APIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestSealedAPIKeyNeverStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sealer, err := NewSealer(testSecret)
	require.NoError(t, err)
	svc := NewService(store.NewRedisKV(rdb, "s:"), sealer)

	_, err = svc.Save(ctx, models.Settings{APIKey: "gsk_live_secret"})
	require.NoError(t, err)

	raw, err := mr.Get("s:" + KeyAPIKey)
	require.NoError(t, err)
	assert.True(t, Sealed(raw))
	assert.NotContains(t, raw, "gsk_live_secret")

	key, err := svc.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gsk_live_secret", key)

	// Without the secret the stored value cannot be read back.
	_, err = NewService(store.NewRedisKV(rdb, "s:"), nil).APIKey(ctx)
	assert.ErrorIs(t, err, ErrUnseal)
}

func TestSealer(t *testing.T) {
	a, err := NewSealer(testSecret)
	require.NoError(t, err)
	b, err := NewSealer("another-secret-value")
	require.NoError(t, err)

	v1, err := a.Seal("k")
	require.NoError(t, err)
	v2, err := a.Seal("k")
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2, "nonces differ")

	plain, err := a.Open(v1)
	require.NoError(t, err)
	assert.Equal(t, "k", plain)

	_, err = b.Open(v1)
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = a.Open(sealedPrefix + "!!")
	assert.ErrorIs(t, err, ErrUnseal)

	plain, err = a.Open("gsk_plain")
	require.NoError(t, err)
	assert.Equal(t, "gsk_plain", plain)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "•••", mask("abc"))
	assert.True(t, strings.HasSuffix(mask("gsk_123456"), "3456"))
	assert.NotContains(t, mask("gsk_123456"), "gsk")
}
