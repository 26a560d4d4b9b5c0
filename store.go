package formation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aretw0/formation/pkg/ports"
)

// Save encodes f and stores it under id.
func Save(ctx context.Context, store ports.DocumentStore, id string, f *Formation) error {
	doc, err := f.Encode()
	if err != nil {
		return fmt.Errorf("encode formation: %w", err)
	}
	return store.Save(ctx, id, doc)
}

// Load fetches the document stored under id and decodes it with the default registry.
func Load(ctx context.Context, store ports.DocumentStore, id string, opts ...Option) (*Formation, error) {
	return defaultRegistry.Load(ctx, store, id, opts...)
}

// Load fetches the document stored under id and decodes it.
func (r *Registry) Load(ctx context.Context, store ports.DocumentStore, id string, opts ...Option) (*Formation, error) {
	doc, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := r.Decode(bytes.NewReader(doc), opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return f, nil
}

// LockTTL bounds how long Update holds a document lock.
const LockTTL = 30 * time.Second

// Update loads the document stored under id, applies fn and saves the result.
// When locker is non-nil the whole cycle runs under the document's lock. The
// document is not saved if fn fails.
func (r *Registry) Update(ctx context.Context, store ports.DocumentStore, locker ports.DocumentLocker, id string, fn func(*Formation) error, opts ...Option) error {
	if locker != nil {
		unlock, err := locker.Lock(ctx, id, LockTTL)
		if err != nil {
			return fmt.Errorf("lock %s: %w", id, err)
		}
		defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
	}

	f, err := r.Load(ctx, store, id, opts...)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return err
	}
	return Save(ctx, store, id, f)
}

// Update runs Registry.Update on the default registry.
func Update(ctx context.Context, store ports.DocumentStore, locker ports.DocumentLocker, id string, fn func(*Formation) error, opts ...Option) error {
	return defaultRegistry.Update(ctx, store, locker, id, fn, opts...)
}
