package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/clicktree/internal/config"
	"github.com/aretw0/clicktree/pkg/adapters/file"
	"github.com/aretw0/clicktree/pkg/adapters/memory"
	"github.com/aretw0/clicktree/pkg/adapters/redis"
	"github.com/aretw0/clicktree/pkg/adapters/sqlite"
	"github.com/aretw0/clicktree/pkg/persistence/middleware"
	"github.com/aretw0/clicktree/pkg/ports"
	"github.com/aretw0/clicktree/pkg/session"
)

// Backend is an opened session store plus whatever the manager needs with it.
type Backend struct {
	Store       ports.StateStore
	SessionOpts []session.Option
	close       func() error
}

// Close releases connections held by the store.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenStore builds the store selected by cfg. The redis store also provides a
// distributed locker so several server instances can share sessions. With an
// encryption key every snapshot is sealed before it reaches the store.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	var mws []middleware.Middleware
	if cfg.EncryptionKey != "" {
		enc, err := encryptionConfig(cfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(enc))
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.Store = middleware.Chain(b.Store, mws...)
	return b, nil
}

func encryptionConfig(cfg config.StoreConfig) (middleware.EncryptionConfig, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, err
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return middleware.EncryptionConfig{}, fmt.Errorf("fallback key: %w", err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return enc, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Kind {
	case config.StoreMemory:
		return &Backend{Store: memory.NewStore()}, nil

	case config.StoreFile:
		return &Backend{Store: file.New(cfg.Path)}, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, close: store.Close}, nil

	case config.StoreRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		prefix := redis.DefaultPrefix
		if cfg.Prefix != "" {
			prefix = cfg.Prefix
			opts = append(opts, redis.WithPrefix(prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Client().Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return &Backend{
			Store:       store,
			SessionOpts: []session.Option{session.WithLocker(redis.NewLocker(store.Client(), prefix))},
			close:       store.Client().Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}
