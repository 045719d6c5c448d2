package locker

import (
	"context"
	"errors"
	"sync"
)

var ErrLockNotAcquired = errors.New("professional lock not acquired")

// Locker serializes the booking write path per professional so two
// concurrent creates for overlapping intervals cannot both pass the
// overlap guard.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// keyedMutex is an in-process Locker for single-node deployments and tests.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an in-process Locker keyed by professional ID.
func NewKeyedMutex() Locker {
	return &keyedMutex{locks: make(map[string]*entry)}
}

func (k *keyedMutex) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
