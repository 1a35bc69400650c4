package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/stockledger/internal/adapter/http"
	"github.com/iho/stockledger/internal/adapter/http/handler"
	"github.com/iho/stockledger/internal/adapter/http/middleware"
	"github.com/iho/stockledger/internal/adapter/messaging"
	postgresRepo "github.com/iho/stockledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/stockledger/internal/adapter/repository/redis"
	"github.com/iho/stockledger/internal/infrastructure/config"
	"github.com/iho/stockledger/internal/infrastructure/eventpublisher"
	"github.com/iho/stockledger/internal/infrastructure/logger"
	"github.com/iho/stockledger/internal/infrastructure/metrics"
	"github.com/iho/stockledger/internal/infrastructure/postgres"
	"github.com/iho/stockledger/internal/infrastructure/redis"
	"github.com/iho/stockledger/internal/usecase"
)

const rateLimiterIdle = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "stockledger",
	})

	policy, err := cfg.StockPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid negative stock policy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancelConnect()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClientWithConfig(connectCtx, redis.ClientConfig{
		URL:      cfg.RedisURL,
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	cardRepo := postgresRepo.NewStockCardRepository(pool)
	lineItemRepo := postgresRepo.NewLineItemRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	reasonRepo := redisRepo.NewCachedReasonRepository(postgresRepo.NewReasonRepository(pool), cache, cfg.ReferenceCacheTTL, log.Logger)
	nodeRepo := redisRepo.NewCachedNodeRepository(postgresRepo.NewNodeRepository(pool), cache, cfg.ReferenceCacheTTL, log.Logger)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	factory := usecase.NewLineItemFactory(reasonRepo, nodeRepo, idGen, nil)
	stockEventUC := usecase.NewStockEventUseCase(
		txManager, cardRepo, lineItemRepo, outboxRepo, factory, idGen,
		usecase.WithRetrier(postgresRepo.NewRetrier(log.Logger)),
		usecase.WithMetrics(m),
		usecase.WithNegativeStockPolicy(policy),
		usecase.WithLogger(log.Logger),
	)
	stockCardUC := usecase.NewStockCardUseCase(cardRepo, lineItemRepo, idGen, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(cardRepo, lineItemRepo, nil)
	referenceDataUC := usecase.NewReferenceDataUseCase(reasonRepo, nodeRepo, idGen, nil)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits.Inc)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		StockCardHandler:      handler.NewStockCardHandler(stockCardUC, stockEventUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC, m),
		ReferenceDataHandler:  handler.NewReferenceDataHandler(referenceDataUC),
		HealthHandler: handler.NewHealthHandler(
			handler.HealthCheck{Name: "postgres", Check: pool.Ping},
			handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}},
		),
		Idempotency:    middleware.NewIdempotencyMiddleware(idempotencyStore, cfg.IdempotencyTTL, log.Logger),
		RateLimiter:    rateLimiter,
		Metrics:        m,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         log.Logger,
	})

	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	var wg sync.WaitGroup

	// Outbox publisher
	publisher, closePublisher := newOutboxPublisher(cfg, log.Logger)
	defer closePublisher()

	ep := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Observer:   m,
		Logger:     log.Logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := ep.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Movement consumer
	if cfg.KafkaEnabled() {
		consumer := messaging.NewMovementConsumer(messaging.ConsumerConfig{
			Reader:         messaging.NewMovementReader(cfg.KafkaBrokers, cfg.KafkaMovementsTopic, cfg.KafkaGroupID),
			Recorder:       stockEventUC,
			Idempotency:    idempotencyStore,
			IdempotencyTTL: cfg.IdempotencyTTL,
			Observer:       m,
			Logger:         log.Logger,
		})
		defer consumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("movement consumer stopped")
			}
		}()
	}

	// Idle rate limiter entries
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(rateLimiterIdle)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Cleanup(rateLimiterIdle)
			}
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
}

func serverAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}

// newOutboxPublisher publishes to Kafka when brokers are configured and to
// the log otherwise. The returned func releases the publisher.
func newOutboxPublisher(cfg *config.Config, logger zerolog.Logger) (eventpublisher.Publisher, func()) {
	if !cfg.KafkaEnabled() {
		logger.Info().Msg("kafka disabled, outbox events go to the log")
		return eventpublisher.NewLogPublisher(logger), func() {}
	}

	p := eventpublisher.NewKafkaPublisher(eventpublisher.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaEventsTopic))
	return p, closeQuietly(p, logger)
}

func closeQuietly(c io.Closer, logger zerolog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("close failed")
		}
	}
}
