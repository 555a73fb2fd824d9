package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/vase-shop/internal/core/domain"
)

const (
	lockRetryMin = 5 * time.Millisecond
	lockRetryMax = 100 * time.Millisecond
)

// deletes the key only if it still holds our token
var releaseLockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisLocker serializes callers per record across processes sharing one Redis.
// A lock expires after ttl if its holder dies without releasing it.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait}
}

func (r *RedisLocker) Lock(ctx context.Context, collection, id string) (func(), error) {
	key := lockKey(collection, id)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	backoff := lockRetryMin
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, storageErr("acquire "+key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w: %w", key, domain.ErrLockTimeout, ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, lockRetryMax)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, releaseCancel := context.WithTimeout(context.Background(), time.Second)
			defer releaseCancel()
			if err := releaseLockScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
				log.Printf("release %s: %v", key, err)
			}
		})
	}, nil
}
