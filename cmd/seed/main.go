package main

import (
	"context"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/redis/go-redis/v9"

	"github.com/luxylyfe/portal/internal/config"
	"github.com/luxylyfe/portal/internal/database"
	"github.com/luxylyfe/portal/internal/logging"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	var opts seed.Options
	if err := env.Parse(&opts); err != nil {
		log.WithError(err).Fatal("invalid seed options")
	}
	opts.Cost = cfg.BcryptCost

	var rdb *redis.Client
	if cfg.StoreDriver == config.DriverRedis {
		redisCfg, err := config.LoadRedisConfig()
		if err != nil {
			log.WithError(err).Fatal("invalid redis configuration")
		}
		rdb = config.NewRedisClient(redisCfg)
	}
	store, err := database.OpenStore(cfg, rdb, log)
	if err != nil {
		log.WithError(err).Fatal("open document store")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := seed.Run(ctx, repository.New(store), opts, log); err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	log.WithField("driver", cfg.StoreDriver).Info("seed complete")
}
