package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetNX(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("zoomo")

	ok, err := c.SetNX(ctx, "k", "pending", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "pending", v)

	require.NoError(t, c.Set(ctx, "k", "42", time.Minute))
	v, _ = c.Get(ctx, "k")
	assert.Equal(t, "42", v)

	require.NoError(t, c.Del(ctx, "k"))
	v, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("").(*memoryCache)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	ok, _ := m.SetNX(ctx, "k", "v", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)

	ok, _ = m.SetNX(ctx, "k", "again", time.Second)
	assert.True(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "zoomo:order:7:abc", NewMemory("zoomo").Key("order", "7", "abc"))
	assert.Equal(t, "order:7", NewMemory("").Key("order", "7"))
}
