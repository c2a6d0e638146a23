package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/GintasS/social-media-post-generator/internal/config"
)

// seeder is implemented by the remote stores, which start empty.
type seeder interface {
	Seed(ctx context.Context, doc []byte) (bool, error)
}

// openStore returns the configured document store and a func releasing it.
func openStore(ctx context.Context, s config.Settings, logger *zap.Logger) (config.AppConfigService, func() error, error) {
	var (
		store   config.AppConfigService
		closeFn = func() error { return nil }
	)

	switch s.Store.Backend {
	case "file":
		return config.NewAppConfigService(s.Static.Config, logger), closeFn, nil
	case "redis":
		rs, err := config.NewRedisStore(s.Store.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = rs, rs.Close
	case "postgres":
		ps, err := config.NewPostgresStore(ctx, s.Store.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = ps, ps.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", s.Store.Backend)
	}

	if s.Store.Seed {
		if err := seedStore(ctx, store.(seeder), s.Static.Config, logger); err != nil {
			_ = closeFn()
			return nil, nil, err
		}
	}
	return store, closeFn, nil
}

func seedStore(ctx context.Context, store seeder, path string, logger *zap.Logger) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed document %s: %w", path, err)
	}
	seeded, err := store.Seed(ctx, doc)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("store seeded", zap.String("from", path))
	}
	return nil
}
