package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
	"github.com/rhandyus/senjagames-sub001/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetOrder(t *testing.T) {
	order := &models.Order{
		ID:          "T1",
		UserID:      "buyer-1",
		Items:       []string{"acct-1"},
		TotalAmount: models.Money{Value: "50000.00", Currency: "IDR"},
		Status:      models.PENDING,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OrdersTableName: "orders"}

		orderAV, _ := attributevalue.MarshalMap(order)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: orderAV}, nil)

		result, err := store.GetOrder(context.Background(), "T1")

		assert.NoError(t, err)
		assert.Equal(t, order, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OrdersTableName: "orders"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetOrder(context.Background(), "T1")

		assert.ErrorIs(t, err, storage.ErrOrderNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, OrdersTableName: "orders"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		_, err := store.GetOrder(context.Background(), "T1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get order from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}
