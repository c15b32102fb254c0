package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rhandyus/senjagames-sub001/pkg/handlers"
	"github.com/rhandyus/senjagames-sub001/pkg/idempotency"
	"github.com/rhandyus/senjagames-sub001/pkg/middleware"
	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
	"github.com/rhandyus/senjagames-sub001/pkg/signature"
	dydbstore "github.com/rhandyus/senjagames-sub001/pkg/storage/dynamodb"
)

const replayKeyTTL = 24 * time.Hour

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	ordersTable := os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	if ordersTable == "" || usersTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// The shared secret authenticating the payment processor. Never logged.
	secret := os.Getenv("PAYMENT_CALLBACK_HMAC_SECRET")
	if secret == "" {
		log.Fatal("PAYMENT_CALLBACK_HMAC_SECRET environment variable not set")
	}

	// Optional Redis replay guard; the store's compare-and-set remains the
	// authoritative duplicate-delivery guard without it.
	var replays settlement.ReplayGuard
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		replays = idempotency.NewRedisReplayGuard(redisClient, replayKeyTTL)
	}

	// Create our storage implementation
	store := dydbstore.New(dbClient, ordersTable, usersTable)

	// Create the settlement pipeline
	verifier := signature.NewVerifier(secret)
	engine := settlement.NewEngine(store, replays, logger)
	handler := handlers.NewWebhookHandler(verifier, engine, logger)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(middleware.Metrics)

	handler.Mount(router)
	router.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
