package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies connectivity on startup.
func NewRedisClient(addr, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

// Redis is a SlotCache shared across replicas. Expiry is handled by the
// key TTL, so reads never see stale entries. A Redis error on read
// degrades to a cache miss rather than failing the request.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

func redisSlotKey(calendarID, date string) string {
	return "slots:" + calendarID + ":" + date
}

func (r *Redis) Get(ctx context.Context, calendarID, date string) ([]string, bool) {
	raw, err := r.client.Get(ctx, redisSlotKey(calendarID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("slot cache read error calendar=%s date=%s: %v", calendarID, date, err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		log.Printf("slot cache decode error calendar=%s date=%s: %v", calendarID, date, err)
		return nil, false
	}
	return slots, true
}

func (r *Redis) Put(ctx context.Context, calendarID, date string, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		log.Printf("slot cache encode error calendar=%s date=%s: %v", calendarID, date, err)
		return
	}
	if err := r.client.Set(ctx, redisSlotKey(calendarID, date), raw, r.ttl).Err(); err != nil {
		log.Printf("slot cache write error calendar=%s date=%s: %v", calendarID, date, err)
	}
}

func (r *Redis) Invalidate(ctx context.Context, calendarID, date string) {
	if err := r.client.Del(ctx, redisSlotKey(calendarID, date)).Err(); err != nil {
		log.Printf("slot cache invalidate error calendar=%s date=%s: %v", calendarID, date, err)
	}
}
