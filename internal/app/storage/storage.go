package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wavify/internal/app/repository"
	"wavify/internal/app/repository/pg"
	"wavify/internal/app/repository/redis"
	"wavify/internal/app/repository/sqlite"
	"wavify/internal/config"
)

// Open creates the recorder selected by cfg.Driver. The returned cleanup
// closes it and must be called once at shutdown.
func Open(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (repository.ConversionRecorder, func(), error) {
	log = log.With(zap.String("component", "store"), zap.String("driver", cfg.Driver))

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var (
		recorder repository.ConversionRecorder
		err      error
	)
	switch cfg.Driver {
	case "sqlite":
		recorder, err = sqlite.Open(ctx, cfg.DSN, cfg.Collection)
	case "postgres":
		recorder, err = pg.Open(ctx, cfg.DSN, cfg.Database, cfg.Collection)
	case "redis":
		recorder, err = redis.Open(ctx, cfg.DSN, cfg.Collection)
	case "none", "":
		recorder = repository.NopRecorder{}
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	log.Info("metadata store ready", zap.String("collection", cfg.Collection))
	cleanup := func() {
		if err := recorder.Close(); err != nil {
			log.Warn("failed to close metadata store", zap.Error(err))
		}
	}
	return recorder, cleanup, nil
}
