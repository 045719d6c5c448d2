package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a Locker that guards each professional's write
// path with a per-key Redis lock, for deployments with more than one
// API instance.
func NewRedisLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisLocker{client: client, ttl: ttl}
}

// Lock keys are professional-level, so unrelated bookings for one
// professional contend with each other. A short bounded retry absorbs
// that benign contention instead of failing the request on the first
// busy poll.
const (
	acquireAttempts = 4
	acquireBackoff  = 25 * time.Millisecond
)

func (l *redisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lockKey := fmt.Sprintf("lock:professional:%s", key)
	token := uuid.NewString()

	ok, err := l.acquire(ctx, lockKey, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, lockKey, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// acquire polls SetNX with linear backoff until the lock is won, the
// attempts run out, or the context ends.
func (l *redisLocker) acquire(ctx context.Context, key, token string) (bool, error) {
	for attempt := 1; ; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return false, fmt.Errorf("acquire professional lock: %w", err)
		}
		if ok {
			return true, nil
		}
		if attempt == acquireAttempts {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(time.Duration(attempt) * acquireBackoff):
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// release deletes the lock only if we still own it.
func (l *redisLocker) release(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, l.client, []string{key}, token).Err()
}
