package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/app"
	"github.com/luxylyfe/portal/internal/config"
	"github.com/luxylyfe/portal/internal/database"
	"github.com/luxylyfe/portal/internal/logging"
	"github.com/luxylyfe/portal/internal/observability/metrics"
	"github.com/luxylyfe/portal/internal/queue"
	"github.com/luxylyfe/portal/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	metrics.MustRegister()

	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid redis configuration")
	}
	rateCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid rate limit configuration")
	}

	rdb := config.NewRedisClient(redisCfg)
	if rdb == nil {
		log.Warn("redis unreachable; rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var storeRedis *redis.Client
	if cfg.StoreDriver == config.DriverRedis {
		storeRedis = rdb
	}
	store, err := database.OpenStore(cfg, storeRedis, log)
	if err != nil {
		log.WithError(err).Fatal("open document store")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub service.EventPublisher = service.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		pub = service.NewAMQPPublisher(cfg.RabbitMQURL, log)
		consumer := queue.NewConsumer(cfg.RabbitMQURL, "logs", log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("request consumer stopped")
			}
		}()
	}

	a, err := app.New(app.Deps{
		Config:    cfg,
		RateLimit: rateCfg,
		Store:     store,
		Redis:     rdb,
		Publisher: pub,
		Log:       log,
	})
	if err != nil {
		log.WithError(err).Fatal("build server")
	}

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "store": cfg.StoreDriver}).Info("listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
