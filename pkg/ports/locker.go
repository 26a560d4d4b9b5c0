package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock acquired through a DocumentLocker.
type UnlockFunc func(ctx context.Context) error

// DocumentLocker serializes read-modify-write cycles on a stored document
// (load, train, save) across processes sharing one DocumentStore.
type DocumentLocker interface {
	// Lock blocks until the lock for id is held or ctx is done.
	// The returned UnlockFunc must be called to release it; the lock also
	// expires on its own after ttl.
	Lock(ctx context.Context, id string, ttl time.Duration) (UnlockFunc, error)
}
