package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mindwell/creditledger/internal/adapter/http"
	"github.com/mindwell/creditledger/internal/adapter/http/handler"
	"github.com/mindwell/creditledger/internal/adapter/http/middleware"
	postgresRepo "github.com/mindwell/creditledger/internal/adapter/repository/postgres"
	redisRepo "github.com/mindwell/creditledger/internal/adapter/repository/redis"
	"github.com/mindwell/creditledger/internal/infrastructure/auth"
	"github.com/mindwell/creditledger/internal/infrastructure/config"
	"github.com/mindwell/creditledger/internal/infrastructure/eventpublisher"
	"github.com/mindwell/creditledger/internal/infrastructure/logger"
	"github.com/mindwell/creditledger/internal/infrastructure/metrics"
	"github.com/mindwell/creditledger/internal/infrastructure/postgres"
	"github.com/mindwell/creditledger/internal/infrastructure/redis"
	"github.com/mindwell/creditledger/internal/infrastructure/signature"
	"github.com/mindwell/creditledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	verifier := signature.NewHMACVerifier(cfg.SettlementWebhookSecret)
	policy := usecase.NewRolePolicy()
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, idGen, cache, cfg.BalanceCacheTTL)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, entryRepo, outboxRepo, policy, idGen, retrier, cache)
	settlementUC := usecase.NewSettlementUseCase(verifier, txManager, accountRepo, entryRepo, outboxRepo, idGen, retrier, cache)
	historyUC := usecase.NewHistoryUseCase(entryRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo)

	// Outbox relay
	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()

	if cfg.EventPublishEnabled {
		var publisher eventpublisher.Publisher
		if len(cfg.KafkaBrokers) > 0 {
			kafkaPublisher := eventpublisher.NewKafkaPublisher(eventpublisher.KafkaConfig{
				Brokers:      cfg.KafkaBrokers,
				Topic:        cfg.KafkaTopic,
				WriteTimeout: cfg.KafkaWriteTimeout,
			})
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
			log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
		} else {
			publisher = eventpublisher.NewLogPublisher(appLogger)
			log.Info().Msg("no kafka brokers configured, logging events instead")
		}

		relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  publisher,
			Logger:     appLogger,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})

		go func() {
			if err := relay.Start(relayCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("outbox relay stopped")
			}
		}()
	}

	// HTTP
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits.Inc)
	transferLimiter := middleware.NewRateLimiter(cfg.TransferRateLimitRPS, cfg.TransferRateLimitBurst, m.RateLimitHits.Inc)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		TransferHandler:       handler.NewTransferHandler(transferUC),
		EntryHandler:          handler.NewEntryHandler(historyUC),
		SettlementHandler:     handler.NewSettlementHandler(settlementUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		JWTManager:            jwtManager,
		AuthEnabled:           cfg.AuthEnabled,
		RateLimiter:           rateLimiter,
		TransferRateLimiter:   transferLimiter,
		Metrics:               m,
		Logger:                appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopRelay()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
