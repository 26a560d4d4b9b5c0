package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_LockLifecycle(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		unlock, err := l.Lock(ctx, fmt.Sprintf("doc-%d", i), time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	}
	assert.Equal(t, 0, l.Len(), "released locks are collected")
}

func TestLocker_Contention(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "home", time.Second)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "home", time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Len(), "timed out waiters drop their reference")

	_, err = l.Lock(short, "away", time.Second)
	assert.NoError(t, err, "ids lock independently")

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx), "unlocking twice is a no-op")
}

func TestLocker_MutualExclusion(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	var wg sync.WaitGroup
	inside, maxInside := 0, 0
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "home", time.Second)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			maxInside = max(maxInside, inside)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = unlock(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
	assert.Equal(t, 0, l.Len())
}
