package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; Redis and rate limiting are configured
// separately by NewRedisClient and LoadRateLimitConfig.
type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"` // development | production | test
	Port       string `env:"APP_PORT" envDefault:"3000"`
	JWTSecret  string `env:"JWT_SECRET,required"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"12"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"redis"`
	StorePrefix string `env:"STORE_PREFIX" envDefault:"luxylyfe"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"luxylyfe"`

	DBUser string `env:"DB_USER" envDefault:"root"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" envDefault:"localhost"`
	DBPort string `env:"DB_PORT" envDefault:"3306"`
	DBName string `env:"DB_NAME" envDefault:"luxylyfe"`

	// RabbitMQURL enables request.filed events when set.
	RabbitMQURL string `env:"RABBITMQ_URL"`
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Parse reads the environment into a Config and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must not be empty")
	}
	switch cfg.StoreDriver {
	case DriverRedis, DriverMongo, DriverMySQL, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, errors.New("BCRYPT_COST must be between 4 and 31")
	}
	return cfg, nil
}

// Load reads an optional .env file, then the environment. A missing
// JWT_SECRET or any other invalid value stops the process.
func Load() Config {
	_ = godotenv.Load()
	cfg, err := Parse()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	return cfg
}
