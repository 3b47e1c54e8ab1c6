package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/redis"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := t.Name() + "-" + mr.Addr()
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func TestStore_CreateAndGet(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	store := NewStore(adapter, time.Hour)

	p := Principal{
		UserUID: "user-1",
		Role:    model.RoleSeller,
		Name:    "Ramesh",
		Email:   "ramesh@example.com",
	}

	token, err := store.Create(p)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := store.Get(token)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestStore_UnknownToken(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	store := NewStore(adapter, time.Hour)

	_, err := store.Get("not-a-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Expiry(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	store := NewStore(adapter, time.Minute)

	token, err := store.Create(Principal{UserUID: "user-1", Role: model.RoleBuyer})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Destroy(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	store := NewStore(adapter, time.Hour)

	token, err := store.Create(Principal{UserUID: "user-1", Role: model.RoleManager})
	require.NoError(t, err)

	err = store.Destroy(token)
	require.NoError(t, err)

	_, err = store.Get(token)
	assert.ErrorIs(t, err, ErrNotFound)

	// destroying again is a no-op
	err = store.Destroy(token)
	assert.NoError(t, err)
}

func TestStore_TokensAreUnique(t *testing.T) {
	mr, adapter := setupTestRedis(t)
	defer mr.Close()

	store := NewStore(adapter, time.Hour)

	a, err := store.Create(Principal{UserUID: "user-1", Role: model.RoleBuyer})
	require.NoError(t, err)
	b, err := store.Create(Principal{UserUID: "user-1", Role: model.RoleBuyer})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
