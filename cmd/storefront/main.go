package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/johan374/Ecommerce-production/internal/catalog"
	"github.com/johan374/Ecommerce-production/internal/checkout"
	"github.com/johan374/Ecommerce-production/internal/events"
	"github.com/johan374/Ecommerce-production/internal/httpapi"
	"github.com/johan374/Ecommerce-production/internal/orders"
	"github.com/johan374/Ecommerce-production/internal/payment"
	"github.com/johan374/Ecommerce-production/internal/session"
)

type Config struct {
	HTTPPort        string
	CatalogBaseURL  string
	PaymentBaseURL  string
	PaymentAPIKey   string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    string
	Postgres        orders.Credentials
	SessionTTL      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8000/api"),
		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", "http://localhost:4242"),
		PaymentAPIKey:  getEnv("PAYMENT_API_KEY", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:   getEnv("KAFKA_BROKERS", "localhost:9092"),
		Postgres: orders.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "storefront"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "internal/orders/migrations"),
		},
		SessionTTL:      30 * time.Minute,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Orders repository
	repo, err := orders.NewPostgresRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer repo.Close()
	if err := repo.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to postgres at %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)

	// Redis-backed catalog cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.RequestTimeout)
	catalogService := catalog.NewService(catalogClient, catalog.NewRedisCache(redisClient))

	// Payment provider + order events
	provider := payment.NewHTTPClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.RequestTimeout)
	publisher := events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
	defer publisher.Close()

	checkoutService := checkout.NewService(provider, repo, publisher)

	// Cart sessions
	registry := session.NewRegistry(cfg.SessionTTL)
	go registry.Run(ctx)

	cartHandler := httpapi.NewCartHandler(catalogService, checkoutService)
	catalogHandler := httpapi.NewCatalogHandler(catalogService)

	router := httpapi.NewRouter(registry, cartHandler, catalogHandler, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
