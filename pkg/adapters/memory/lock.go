package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/formation/pkg/ports"
)

// lockEntry holds the lock token and the reference count.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// Locker implements ports.DocumentLocker within one process. Entries are
// reference counted so unused ids do not accumulate. The ttl is ignored: a
// lock lives until it is released.
type Locker struct {
	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks
}

// NewLocker creates an in-process document locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST call release(id) once done with the entry.
func (l *Locker) acquire(id string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[id]
	if !exists {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Locker) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, id)
	}
}

// Lock blocks until id is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, id string, ttl time.Duration) (ports.UnlockFunc, error) {
	entry := l.acquire(id)
	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(id)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-entry.sem
			l.release(id)
		})
		return nil
	}, nil
}

// Len returns the number of ids currently locked or waited on.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
