package store

import (
	"context"

	"github.com/terradyn/geomodel/pkg/config"
	"github.com/terradyn/geomodel/pkg/errors"
)

// Open creates the document store selected by the settings.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis backend requires redis_addr")
		}
		return NewRedisStore(cfg.RedisAddr), nil
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "mongo backend requires mongo_uri")
		}
		db := cfg.MongoDatabase
		if db == "" {
			db = "geomodel"
		}
		return NewMongoStore(ctx, cfg.MongoURI, db)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}
