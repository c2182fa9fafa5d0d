package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Object store backends.
const (
	BackendS3    = "s3"
	BackendRedis = "redis"
)

// Config holds application configuration.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	UserAgent       string        `env:"USER_AGENT" envDefault:"catalog-sync/0.1.0"`
	RunTimeout      time.Duration `env:"RUN_TIMEOUT" envDefault:"15m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Sync     Sync
	RabbitMQ RabbitMQ
	Redis    Redis
	Store    Store
}

// Sync holds sync pass tuning.
type Sync struct {
	ChunkSize           int `env:"CHUNK_SIZE" envDefault:"50"`
	StoreBatchSize      int `env:"STORE_BATCH_SIZE" envDefault:"50"`
	FullScanPageSize    int `env:"FULL_SCAN_PAGE_SIZE" envDefault:"200"`
	FullScanConcurrency int `env:"FULL_SCAN_CONCURRENCY" envDefault:"5"`
	TargetedPageSize    int `env:"TARGETED_PAGE_SIZE" envDefault:"50"`
	TargetedConcurrency int `env:"TARGETED_CONCURRENCY" envDefault:"25"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL,required"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"catalog-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"catalog-sync.chunks"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"catalog.sync"`
}

// Redis holds Redis configuration.
type Redis struct {
	URL                string `env:"REDIS_URL,required"`
	TenantConfigPrefix string `env:"TENANT_CONFIG_PREFIX" envDefault:"catalog:config:"`
	ObjectPrefix       string `env:"REDIS_OBJECT_PREFIX" envDefault:"catalog:objects:"`
}

// Store holds object store configuration.
type Store struct {
	Backend         string `env:"STORE_BACKEND" envDefault:"s3"`
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION" envDefault:"auto"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// Load reads .env files when present and parses environment into Config.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendS3:
		if c.Store.Bucket == "" {
			return errors.New("S3_BUCKET is required for s3 store backend")
		}
	case BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	return nil
}
