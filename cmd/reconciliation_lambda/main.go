package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/rhandyus/senjagames-sub001/pkg/scheduler"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
	dydbstore "github.com/rhandyus/senjagames-sub001/pkg/storage/dynamodb"
)

var store storage.Storage
var sqsScheduler scheduler.Scheduler

// Orders locked longer than this without a fulfillment write are considered
// crashed mid-settlement. Worst-case webhook latency is a few seconds, so
// anything this old is genuinely stuck.
const staleSettlementThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	// Initialize dependencies.
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler = scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	ordersTable := os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")

	store = dydbstore.New(dbClient, ordersTable, usersTable)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep for half-settled orders...")

	stuck, err := store.ListStaleSettlements(ctx, staleSettlementThreshold)
	if err != nil {
		log.Printf("ERROR: failed to list stale settlements: %v", err)
		return err
	}

	if len(stuck) == 0 {
		log.Println("No stale settlements found.")
		return nil
	}

	log.Printf("Found %d stale settlements. Enqueuing fulfillment jobs...", len(stuck))

	for _, order := range stuck {
		if err := sqsScheduler.ScheduleFulfillment(ctx, order.ID); err != nil {
			log.Printf("ERROR: failed to enqueue fulfillment for order %s: %v", order.ID, err)
			// Continue to the next order, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully enqueued fulfillment for order %s", order.ID)
	}

	log.Println("Reconciliation sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
