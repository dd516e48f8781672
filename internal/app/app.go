// Package app wires configuration, snapshot storage, the API client, and the
// state container into a ready Store. It is the single wiring point for the
// CLI.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage/redisstore"
	"github.com/Jitendrakumar99/shivam-commerce/internal/store"
)

// Deps bundles everything a command needs after wiring.
type Deps struct {
	Config    *Config
	Store     *store.Store
	Snapshots storage.Store

	close func()
}

// Close releases held connections.
func (d *Deps) Close() {
	if d.close != nil {
		d.close()
	}
}

// Build creates all dependencies: snapshot storage (local files, or Redis
// when configured), the instrumented API client, and the hydrated store.
func Build(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) (*Deps, error) {
	d := &Deps{Config: cfg}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrap(err, "ping redis")
		}
		d.Snapshots = redisstore.New(rdb, cfg.Redis.Owner)
		d.close = func() { _ = rdb.Close() }
		lg.Info("Using redis snapshots",
			zap.String("addr", cfg.Redis.Addr), zap.String("owner", cfg.Redis.Owner))
	} else {
		fs, err := storage.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, errors.Wrap(err, "open state dir")
		}
		d.Snapshots = fs
		lg.Info("Using file snapshots", zap.String("dir", cfg.StateDir))
	}

	client := api.New(api.Options{
		BaseURL:        cfg.APIURL,
		Timeout:        cfg.Timeout,
		TracerProvider: m.TracerProvider(),
		MeterProvider:  m.MeterProvider(),
	})

	d.Store = store.New(ctx, client, d.Snapshots)
	return d, nil
}
