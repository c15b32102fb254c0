package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
)

const staleSettlementGSI = "status-updated_at-index"

// DynamoDBAPI captures the DynamoDB client surface this store uses, so the
// client can be mocked in tests.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client          DynamoDBAPI
	OrdersTableName string
	UsersTableName  string
}

// New creates a new Store.
func New(client DynamoDBAPI, ordersTable, usersTable string) *Store {
	return &Store{
		Client:          client,
		OrdersTableName: ordersTable,
		UsersTableName:  usersTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
