// Package redislock implements ports.Locker with Redis SET NX leases.
//
// Each lease stores a random token, and unlocking deletes the key only while it
// still holds that token, so an expired lease taken over by another instance is
// never released by its previous owner.
package redislock

import (
	"context"
	"fmt"
	"time"

	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "zapshift:lock:"

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	client goredis.Cmdable
}

var _ ports.Locker = (*Locker)(nil)

// NewLocker uses client for every lease. The caller owns the client lifecycle.
func NewLocker(client goredis.Cmdable) *Locker {
	return &Locker{client: client}
}

// Lock takes key for ttl. A key held by someone else is reported as errs.ErrConflict;
// Redis failures as errs.ErrUpstreamUnavailable.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if key == "" {
		return nil, errs.NewValueIsRequiredError("lock key")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("lock ttl", ttl, "1ns", "unbounded")
	}

	name := keyPrefix + key
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, name, token, ttl).Result()
	if err != nil {
		return nil, errs.NewUpstreamUnavailableError("redis", fmt.Errorf("acquire %s: %w", name, err))
	}
	if !acquired {
		return nil, errs.NewConflictError("lock", key)
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{name}, token).Err(); err != nil {
			return errs.NewUpstreamUnavailableError("redis", fmt.Errorf("release %s: %w", name, err))
		}
		return nil
	}, nil
}
