package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MichalMitros/catalog-sync/cmd/catalog-sync/config"
	"github.com/MichalMitros/catalog-sync/internal/catalog"
	"github.com/MichalMitros/catalog-sync/internal/fetcher"
	"github.com/MichalMitros/catalog-sync/internal/handler"
	"github.com/MichalMitros/catalog-sync/internal/lookup"
	"github.com/MichalMitros/catalog-sync/internal/platform/background"
	"github.com/MichalMitros/catalog-sync/internal/platform/objectstore"
	"github.com/MichalMitros/catalog-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-sync/internal/platform/storage"
	"github.com/MichalMitros/catalog-sync/internal/syncer"
	"github.com/MichalMitros/catalog-sync/internal/tenant"
	"github.com/MichalMitros/catalog-sync/pkg/v1/commander"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("level", cfg.LogLevel).
			Msg("can't parse log level")
	}
	logger = logger.Level(level)

	// postgres run journal
	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}
	if err := storage.Migrate(pgDB); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't migrate Postgres")
	}
	journal := storage.NewPostgres(pgDB, storage.WithRunTimeout(cfg.RunTimeout))

	// redis for tenant config and optionally objects
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse Redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't connect to Redis")
	}

	objects, err := openObjectStore(ctx, cfg, redisClient)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("backend", cfg.Store.Backend).
			Msg("can't open object store")
	}

	// rabbitmq
	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}
	if err := conn.Setup(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't set up RabbitMQ topology")
	}

	store := catalog.NewStore(objects, &logger, catalog.WithBatchSize(cfg.Sync.StoreBatchSize))
	fet := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.UserAgent)
	targets := tenant.NewResolver(tenant.NewRedisSource(redisClient, cfg.Redis.TenantConfigPrefix))
	tasks := background.NewGroup(&logger)

	syn := syncer.NewSyncer(
		fet,
		commander.NewRabbitMQCommander(conn, cfg.RabbitMQ.RoutingKey),
		store,
		journal,
		&logger,
		syncer.WithChunkSize(cfg.Sync.ChunkSize),
		syncer.WithProfiles(
			fetcher.Profile{PageSize: cfg.Sync.FullScanPageSize, Concurrency: cfg.Sync.FullScanConcurrency},
			fetcher.Profile{PageSize: cfg.Sync.TargetedPageSize, Concurrency: cfg.Sync.TargetedConcurrency},
		),
	)
	products := lookup.NewService(store, fet, tasks, &logger)

	// start consuming and handling messages
	rmqHandler := handler.NewRMQHandler(conn, store, syn, targets, &logger)
	if err := rmqHandler.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewHTTPHandler(targets, syn, products, &logger).Router(),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("HTTP server failed")
			cancel()
		}
	}()

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("store_backend", cfg.Store.Backend).
		Msg("catalog sync up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't shut down HTTP server")
	}

	// wait for consumer and backfills to finish
	select {
	case <-conn.Done():
	case <-shutdownCtx.Done():
		logger.Warn().Msg("consumer didn't stop before shutdown timeout")
	}
	if err := tasks.Wait(shutdownCtx); err != nil {
		logger.Warn().
			Err(err).
			Msg("background tasks didn't finish before shutdown timeout")
	}

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := redisClient.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close Redis connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := conn.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ channel")
		}
		if err := amqpConnection.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}

func openObjectStore(ctx context.Context, cfg config.Config, redisClient *redis.Client) (catalog.ObjectStore, error) {
	if cfg.Store.Backend == config.BackendRedis {
		return objectstore.NewRedis(redisClient, cfg.Redis.ObjectPrefix), nil
	}

	return objectstore.NewS3(ctx, objectstore.S3Config{
		Bucket:          cfg.Store.Bucket,
		Region:          cfg.Store.Region,
		Endpoint:        cfg.Store.Endpoint,
		AccessKeyID:     cfg.Store.AccessKeyID,
		SecretAccessKey: cfg.Store.SecretAccessKey,
	})
}
