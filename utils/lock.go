package utils

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes a lock key only when it still holds our token, so an
// expired lock grabbed by another request is never released from here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

// RedisLocker serializes check-then-write sections on shared resources
// (professionals, users) with per-key advisory locks. Keys are acquired in
// sorted order so two requests locking the same set cannot deadlock.
type RedisLocker struct {
	Client     *redis.Client
	TTL        time.Duration
	RetryDelay time.Duration
}

// NewRedisLocker returns a locker with sane defaults.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		Client:     client,
		TTL:        30 * time.Second,
		RetryDelay: 25 * time.Millisecond,
	}
}

// Acquire takes the locks for all keys, blocking (with retries) until each is
// held or ctx is done. The returned release function frees every key and is
// safe to defer.
func (l *RedisLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	token := uuid.New().String()
	var held []string
	release := func() {
		for _, key := range held {
			if err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Err(); err != nil && err != redis.Nil {
				GetLogger().Sugar().Warnf("failed to release lock %s: %v", key, err)
			}
		}
	}

	for _, key := range sorted {
		if err := l.acquireOne(ctx, key, token); err != nil {
			release()
			return nil, err
		}
		held = append(held, key)
	}
	return release, nil
}

func (l *RedisLocker) acquireOne(ctx context.Context, key, token string) error {
	for {
		ok, err := l.Client.SetNX(ctx, "lock:"+key, token, l.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for lock %s: %w", key, ctx.Err())
		case <-time.After(l.RetryDelay):
		}
	}
}
