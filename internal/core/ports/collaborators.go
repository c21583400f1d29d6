package ports

import (
	"context"
	"time"

	"zapshift/internal/core/domain/model/kernel"
)

// Principal is the authenticated caller.
type Principal struct {
	Email kernel.Email
}

// IdentityVerifier turns a bearer token into a principal, or errs.ErrUnauthorized.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// UnlockFunc releases a lock obtained from Locker.
type UnlockFunc func(ctx context.Context) error

// Locker provides short-lived mutual exclusion across service instances.
// Lock returns errs.ErrConflict when the key is held elsewhere.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// Producer delivers serialized messages to the broker.
type Producer interface {
	SendMessage(ctx context.Context, topic, key string, value []byte) error
	Close() error
}
