package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Close()
	})
	return mr
}

func TestBlacklistToken(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	blacklisted, err := IsTokenBlacklisted(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, BlacklistToken(ctx, "token-1", time.Minute))

	blacklisted, err = IsTokenBlacklisted(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// entry expires with the token
	mr.FastForward(2 * time.Minute)
	blacklisted, err = IsTokenBlacklisted(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestBlacklistToken_ExpiredTokenIsSkipped(t *testing.T) {
	mr := setupMiniredis(t)

	require.NoError(t, BlacklistToken(context.Background(), "token-2", 0))
	assert.False(t, mr.Exists("blacklist:token-2"))
}

func TestJSONHelpers(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type item struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var got []item
	found, err := GetJSON(ctx, "tags:all", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := []item{{ID: 1, Name: "Breakfast"}, {ID: 2, Name: "Lunch"}}
	require.NoError(t, SetJSON(ctx, "tags:all", want, time.Minute))

	found, err = GetJSON(ctx, "tags:all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, Delete(ctx, "tags:all"))
	found, err = GetJSON(ctx, "tags:all", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, BlacklistToken(ctx, "token", time.Minute))
	blacklisted, err := IsTokenBlacklisted(ctx, "token")
	assert.NoError(t, err)
	assert.False(t, blacklisted)

	var dest map[string]string
	found, err := GetJSON(ctx, "key", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "key", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, Delete(ctx, "key"))
}
