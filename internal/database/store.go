package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/config"
	"github.com/luxylyfe/portal/internal/docstore"
)

// ErrRedisUnavailable is returned for the redis driver when no client could
// be connected.
var ErrRedisUnavailable = errors.New("redis driver selected but redis is unreachable")

// OpenStore builds the document store selected by cfg.StoreDriver. rdb may
// be nil unless the redis driver is selected. The returned store is
// constructed once at startup and shared by every repository.
func OpenStore(cfg config.Config, rdb *redis.Client, log logrus.FieldLogger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		if rdb == nil {
			return nil, ErrRedisUnavailable
		}
		log.WithField("prefix", cfg.StorePrefix).Info("using redis document store")
		return docstore.NewRedis(rdb, cfg.StorePrefix), nil

	case config.DriverMongo:
		client, err := OpenMongo(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		log.WithField("database", cfg.MongoDatabase).Info("using mongo document store")
		return docstore.NewMongo(client, cfg.MongoDatabase), nil

	case config.DriverMySQL:
		db, err := OpenMySQL(cfg)
		if err != nil {
			return nil, fmt.Errorf("mysql: %w", err)
		}
		store := docstore.NewMySQL(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mysql schema: %w", err)
		}
		log.WithField("database", cfg.DBName).Info("using mysql document store")
		return store, nil

	case config.DriverMemory:
		log.Warn("using in-memory document store; data is lost on exit")
		return docstore.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
