package config

// Redis serves two roles: it is the default document store (STORE_DRIVER=redis)
// and it holds the rate limiter buckets. When the server cannot be reached at
// startup NewRedisClient returns nil; main treats that as fatal for the redis
// driver and as "rate limiting off" otherwise.

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/redis/go-redis/v9"
)

// RedisConfig is read from REDIS_* variables:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR – host:port shorthand (host/port win when both are set)
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//	REDIS_TLS – enable TLS (true/1)
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

func LoadRedisConfig() (RedisConfig, error) {
	var cfg RedisConfig
	if err := env.Parse(&cfg); err != nil {
		return RedisConfig{}, err
	}
	return cfg, nil
}

// Options converts the config into go-redis client options.
func (c RedisConfig) Options() *redis.Options {
	addr := c.Addr
	if c.Host != "" && c.Port != "" {
		addr = net.JoinHostPort(c.Host, c.Port)
	}
	var tlsConf *tls.Config
	if c.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &redis.Options{
		Addr:      addr,
		Password:  c.Password,
		DB:        c.DB,
		TLSConfig: tlsConf,
	}
}

// NewRedisClient connects with cfg and pings the server. It returns nil when
// the ping fails within two seconds.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(cfg.Options())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
