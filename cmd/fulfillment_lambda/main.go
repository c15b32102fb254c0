package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/scheduler"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
	dydbstore "github.com/rhandyus/senjagames-sub001/pkg/storage/dynamodb"
)

var store storage.Storage

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
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

	store = dydbstore.New(dbClient, ordersTable, usersTable)
}

// HandleRequest processes SQS messages and completes the fulfillment of
// orders whose settlement lock was acquired but whose fulfillment write
// never landed.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var job scheduler.FulfillmentJob
		if err := json.Unmarshal([]byte(message.Body), &job); err != nil {
			log.Printf("ERROR: failed to unmarshal fulfillment job from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		order, err := store.GetOrder(ctx, job.OrderID)
		if err != nil {
			log.Printf("ERROR: failed to load order %s for fulfillment: %v", job.OrderID, err)
			return err
		}

		if order.Status != models.SETTLING {
			// Settled in the meantime, most likely by a processor retry that
			// reached the webhook after the reconciliation sweep ran.
			log.Printf("Order %s is %s, nothing to complete", order.ID, order.Status)
			continue
		}

		if err := store.CompleteFulfillment(ctx, order); err != nil {
			log.Printf("ERROR: failed to complete fulfillment for order %s: %v", order.ID, err)
			return err
		}

		log.Printf("Successfully completed fulfillment for order %s", order.ID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
