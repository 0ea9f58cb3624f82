package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.False(t, cfg.Production())
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsUnknownDriverAndCost(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("BCRYPT_COST", "2")
	_, err = Parse()
	assert.Error(t, err)
}

func TestParse_Production(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "Production")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadRateLimitConfig_Shorthands(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "25")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")

	cfg, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 500*time.Millisecond, cfg.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
}

func TestLoadRateLimitConfig_InvalidValue(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "soon")
	_, err := LoadRateLimitConfig()
	assert.Error(t, err)
}

func TestRedisConfig_Options(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	cfg, err := LoadRedisConfig()
	require.NoError(t, err)
	opts := cfg.Options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Nil(t, opts.TLSConfig)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_TLS", "1")
	cfg, err = LoadRedisConfig()
	require.NoError(t, err)
	opts = cfg.Options()
	assert.Equal(t, "redis:6379", opts.Addr)
	assert.NotNil(t, opts.TLSConfig)
}

func TestRedisConfig_DefaultAddr(t *testing.T) {
	cfg, err := LoadRedisConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Options().Addr)
}
