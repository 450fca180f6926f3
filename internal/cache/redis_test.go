package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client, 5*time.Minute), mr
}

func TestRedis_PutGet(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "cal-1", "2025-06-10")
	assert.False(t, ok)

	c.Put(ctx, "cal-1", "2025-06-10", []string{"09:00", "10:00"})

	slots, ok := c.Get(ctx, "cal-1", "2025-06-10")
	require.True(t, ok)
	assert.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestRedis_TTL(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	c.Put(ctx, "cal-1", "2025-06-10", []string{"09:00"})

	mr.FastForward(5*time.Minute - time.Second)
	_, ok := c.Get(ctx, "cal-1", "2025-06-10")
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok = c.Get(ctx, "cal-1", "2025-06-10")
	assert.False(t, ok)
}

func TestRedis_Invalidate(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	c.Put(ctx, "cal-1", "2025-06-10", []string{"09:00"})
	c.Put(ctx, "cal-1", "2025-06-11", []string{"10:00"})

	c.Invalidate(ctx, "cal-1", "2025-06-10")

	_, ok := c.Get(ctx, "cal-1", "2025-06-10")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "cal-1", "2025-06-11")
	assert.True(t, ok)
}

func TestRedis_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(redisSlotKey("cal-1", "2025-06-10"), "{not json"))

	_, ok := c.Get(ctx, "cal-1", "2025-06-10")
	assert.False(t, ok)
}

func TestRedis_DownServerDegradesToMiss(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	c.Put(ctx, "cal-1", "2025-06-10", []string{"09:00"})
	mr.Close()

	_, ok := c.Get(ctx, "cal-1", "2025-06-10")
	assert.False(t, ok)
}
