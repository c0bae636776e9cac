package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcardozo/lead-manager/internal/config"
	"github.com/rcardozo/lead-manager/internal/infra/cache"
	"github.com/rcardozo/lead-manager/internal/infra/database"
	"github.com/rcardozo/lead-manager/internal/infra/http/handlers"
	"github.com/rcardozo/lead-manager/internal/infra/http/middleware"
	"github.com/rcardozo/lead-manager/internal/infra/mail"
	"github.com/rcardozo/lead-manager/internal/infra/queue"
	"github.com/rcardozo/lead-manager/internal/usecase"
)

func main() {
	log, err := newLog("leads-api")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.Errorw("startup", "err", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	godotenv.Load()
	cfg := config.Load()

	// =========================================================================
	// Database

	log.Infow("startup", "status", "initializing database support")

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("updating database schema: %w", err)
	}

	// =========================================================================
	// Optional infrastructure: Redis list cache, RabbitMQ events, SMTP

	var listCache usecase.ListCacheInterface
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		redisClient = rdb
		listCache = cache.NewLeadListCache(rdb, cfg.ListCacheTTL, log)
		log.Infow("startup", "status", "lead list cache enabled", "addr", cfg.RedisAddr)
	}

	var producer usecase.EventProducerInterface
	var rabbitConn *amqp091.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("connecting to rabbitmq: %w", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		var notifier queue.LeadNotifier
		if cfg.SMTPHost != "" && cfg.SalesInbox != "" {
			notifier = mail.NewEmailSender(
				cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
				cfg.MailFrom, cfg.SalesInbox,
			)
		}

		worker := queue.NewWorker(rabbitMQ.Ch, notifier, log)
		go worker.Start(queue.QueueName)
		log.Infow("startup", "status", "lead event worker running", "queue", queue.QueueName)
	}

	// =========================================================================
	// Wiring

	leadRepo := database.NewLeadRepository(db)
	leadUC := usecase.NewLeadUseCase(leadRepo, producer, listCache, log)
	leadHandler := handlers.NewLeadHandler(leadUC, log)
	healthHandler := handlers.NewHealthHandler(db, redisClient, rabbitConn)

	// =========================================================================
	// Router

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to Lead Management API"}`))
	})
	r.Route("/api/leads", leadHandler.Routes)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// =========================================================================
	// HTTP server with graceful shutdown

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "api router started", "addr", cfg.HTTPAddr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete")

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func newLog(serviceName string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
