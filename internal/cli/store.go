package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/config"
	"github.com/aretw0/formation/pkg/adapters/file"
	"github.com/aretw0/formation/pkg/adapters/memory"
	"github.com/aretw0/formation/pkg/adapters/redis"
	"github.com/aretw0/formation/pkg/persistence/middleware"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/google/uuid"
)

// Backend is an opened document store with its optional locker.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DocumentLocker
	close  func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenStore creates the document store selected by cfg, encrypting documents
// when cfg carries a key.
func OpenStore(cfg config.StoreConfig) (*Backend, error) {
	b, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.EncryptionKey == "" {
		return b, nil
	}

	mw, err := encryption(cfg)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mw)
	return b, nil
}

func encryption(cfg config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	var fallback [][]byte
	for i, s := range cfg.FallbackKeys {
		k, err := middleware.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, k)
	}
	return middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
}

func openBackend(cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Kind {
	case config.StoreFile:
		return &Backend{Store: file.New(cfg.Dir), Locker: memory.NewLocker()}, nil
	case config.StoreMemory:
		return &Backend{Store: memory.NewStore(), Locker: memory.NewLocker()}, nil
	case config.StoreRedis:
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithPrefix(prefix), redis.WithTTL(cfg.TTL))
		return &Backend{
			Store:  s,
			Locker: redis.NewLocker(s.Client(), prefix),
			close:  s.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// Push stores the document at path under id and returns the id. An empty id
// gets a generated one.
func Push(ctx context.Context, env *Env, b *Backend, path, id string) (string, error) {
	f, err := env.Load(path)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewString()
	}
	if err := formation.Save(ctx, b.Store, id, f); err != nil {
		return "", err
	}
	env.Logger.Info("document pushed", "id", id, "method", f.MethodName())
	fmt.Fprintln(env.Out, id)
	return id, nil
}

// Pull writes the stored document id to path, or to Out when path is "-".
func Pull(ctx context.Context, env *Env, b *Backend, id, path string) error {
	f, err := env.Registry.Load(ctx, b.Store, id, env.FormationOptions()...)
	if err != nil {
		return err
	}
	return env.Write(path, f)
}

// List prints the stored document ids.
func List(ctx context.Context, env *Env, b *Backend) error {
	ids, err := b.Store.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(env.Out, id)
	}
	return nil
}

// Delete removes the stored document id.
func Delete(ctx context.Context, env *Env, b *Backend, id string) error {
	if err := b.Store.Delete(ctx, id); err != nil {
		return err
	}
	printSystemMessage(env.Out, "Deleted '%s'.", id)
	return nil
}

// TrainStored retrains the stored document id in place while holding the
// backend's lock. A CSV path replaces its samples first.
func TrainStored(ctx context.Context, env *Env, b *Backend, id, csvPath string) error {
	var csv []byte
	if csvPath != "" {
		data, err := os.ReadFile(csvPath)
		if err != nil {
			return fmt.Errorf("failed to read samples: %w", err)
		}
		csv = data
	}

	var method string
	var n int
	err := env.Registry.Update(ctx, b.Store, b.Locker, id, func(f *formation.Formation) error {
		if csv != nil {
			ds, err := samplesFromCSV(bytes.NewReader(csv))
			if err != nil {
				return fmt.Errorf("%s: %w", csvPath, err)
			}
			f.SetSamples(ds)
		}
		method, n = f.MethodName(), f.Samples().Len()
		return f.Train()
	}, env.FormationOptions()...)
	if err != nil {
		return err
	}
	printSystemMessage(env.Out, "Trained '%s' (%s, %d samples).", id, method, n)
	return nil
}
