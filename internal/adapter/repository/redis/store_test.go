package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *Store {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	config := DefaultConfig()
	config.Addr = addr
	config.KeyPrefix = "test:fintrack:"

	store, err := NewStore(config)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	cmd := store.client.B().Del().Key(store.prefix + "finance-app-goals").Build()
	require.NoError(t, store.client.Do(ctx, cmd).Error())

	return store
}

func TestNewStore_RequiresAddress(t *testing.T) {
	_, err := NewStore(Config{})
	assert.Error(t, err)
}

func TestStore_SetGet(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "finance-app-goals")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "finance-app-goals", []byte(`[{"id":"goal1"}]`)))

	value, found, err := store.Get(ctx, "finance-app-goals")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"goal1"}]`, string(value))
}
