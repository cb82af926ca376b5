// @title           Transaction Tracker API
// @version         1.0
// @description     Admin accounts, clients, tracked transactions and their audit history.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/uscl/transaction-tracker/docs"
	"github.com/uscl/transaction-tracker/internal/api"
	"github.com/uscl/transaction-tracker/internal/api/metrics"
	"github.com/uscl/transaction-tracker/internal/api/middleware"
	"github.com/uscl/transaction-tracker/internal/core/ports"
	"github.com/uscl/transaction-tracker/internal/core/service"
	"github.com/uscl/transaction-tracker/internal/infrastructure/broker/rabbitmq"
	"github.com/uscl/transaction-tracker/internal/infrastructure/config"
	"github.com/uscl/transaction-tracker/internal/infrastructure/db/mongo"
	"github.com/uscl/transaction-tracker/internal/infrastructure/db/postgres"
	"github.com/uscl/transaction-tracker/internal/infrastructure/db/redis"
	"github.com/uscl/transaction-tracker/internal/infrastructure/http/handlers"
	"github.com/uscl/transaction-tracker/internal/infrastructure/queue"
	"github.com/uscl/transaction-tracker/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// repositories is the storage backend selected by STORE_DRIVER.
type repositories struct {
	admins       ports.AdminRepository
	clients      ports.ClientRepository
	transactions ports.TransactionRepository
	statuses     ports.StatusRepository
	history      ports.HistoryRepository
	check        handlers.DependencyCheck
	close        func()
}

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	loadLocalEnv(boot)

	cfg := config.Load(boot)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "transaction-tracker",
		Env:     cfg.Env,
	})

	ctx := context.Background()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer repos.close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	readiness := []handlers.DependencyCheck{repos.check}

	// Redis is optional: without it creates are not idempotent and login is
	// not rate limited.
	var (
		txOpts       = []service.TransactionOption{service.WithRecorder(metrics.Recorder{})}
		loginLimiter middleware.Limiter
	)
	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; idempotency keys and login rate limiting disabled")
	} else {
		defer redisClient.Close()
		txOpts = append(txOpts, service.WithIdempotencyStore(redis.NewIdempotencyStore(redisClient)))
		loginLimiter = redis.NewRateLimiter(redisClient, "ratelimit:login", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
		readiness = append(readiness, handlers.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	sink, closeSink := eventSink(cfg, log)
	defer closeSink()

	dispatcher := queue.NewDispatcher(cfg.Events.Workers, sink, metrics.Recorder{}, logger.Component("events"))
	dispatcher.Start(ctx)
	txOpts = append(txOpts, service.WithEventPublisher(dispatcher))

	services := api.Services{
		Auth:         service.NewAuthService(repos.admins, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth")),
		Admins:       service.NewAdminService(repos.admins, logger.Component("admins")),
		Clients:      service.NewClientService(repos.clients, logger.Component("clients")),
		Transactions: service.NewTransactionService(repos.transactions, repos.statuses, logger.Component("transactions"), txOpts...),
		History:      service.NewHistoryService(repos.history, logger.Component("history")),
	}

	e := api.NewRouter(services, api.Options{
		JWTSecret:         cfg.JWTSecret,
		Logger:            logger.Component("http"),
		LoginLimiter:      loginLimiter,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		Readiness:         readiness,
		MetricsRegisterer: prometheus.DefaultRegisterer,
		MetricsGatherer:   prometheus.DefaultGatherer,
		Swagger:           true,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	// In-flight requests are done; flush queued events before the sink closes.
	dispatcher.Close()
}

func loadLocalEnv(log zerolog.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return mongoRepositories(client, db), nil
	default:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		return postgresRepositories(pool), nil
	}
}

func postgresRepositories(pool *pgxpool.Pool) *repositories {
	return &repositories{
		admins:       postgres.NewAdminRepository(pool),
		clients:      postgres.NewClientRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		statuses:     postgres.NewStatusRepository(pool),
		history:      postgres.NewHistoryRepository(pool),
		check:        handlers.DependencyCheck{Name: "postgres", Ping: pool.Ping},
		close:        pool.Close,
	}
}

func mongoRepositories(client *mongodriver.Client, db *mongodriver.Database) *repositories {
	return &repositories{
		admins:       mongo.NewAdminRepository(db),
		clients:      mongo.NewClientRepository(db),
		transactions: mongo.NewTransactionRepository(db),
		statuses:     mongo.NewStatusRepository(db),
		history:      mongo.NewHistoryRepository(db),
		check: handlers.DependencyCheck{
			Name: "mongo",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		},
	}
}

// eventSink publishes to RabbitMQ when RABBITMQ_URL is set and logs otherwise.
func eventSink(cfg *config.Config, log zerolog.Logger) (ports.EventSink, func()) {
	if cfg.Events.RabbitMQURL == "" {
		return queue.LogSink{Log: logger.Component("events")}, func() {}
	}
	pub, err := rabbitmq.NewPublisher(cfg.Events.RabbitMQURL, cfg.Events.Queue)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable; events will only be logged")
		return queue.LogSink{Log: logger.Component("events")}, func() {}
	}
	log.Info().Str("queue", cfg.Events.Queue).Msg("publishing events to rabbitmq")
	return pub, func() { _ = pub.Close() }
}
