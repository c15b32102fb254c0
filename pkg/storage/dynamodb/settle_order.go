package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
)

// SettleOrder marks an order paid and fulfills the buyer's purchase.
// It uses a two-step process to make duplicate callback deliveries safe.
// 1. Attempt to acquire a lock by setting the order status to SETTLING,
//    recording the payment details in the same write.
// 2. If the lock is acquired, complete the fulfillment.
// A delivery that loses step 1 performs no writes at all; the winner's
// buyer-counter increments therefore happen exactly once per order.
func (s *Store) SettleOrder(ctx context.Context, order *models.Order, payment *models.PaymentDetails) (bool, error) {
	// Step 1: Attempt to acquire the settlement lock. This is an atomic
	// operation that only succeeds while the order is still PENDING.
	if err := s.acquireSettlementLock(ctx, order.ID, payment); err != nil {
		if errors.Is(err, storage.ErrOrderNotSettleable) {
			// Another delivery already settled or is settling this order.
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire settlement lock: %w", err)
	}

	// Step 2: Flip the order to PAID and fulfill the buyer. If this fails
	// the order stays SETTLING with the payment recorded, and the
	// reconciliation sweep finishes the job.
	if err := s.CompleteFulfillment(ctx, order); err != nil {
		return false, err
	}

	return true, nil
}

// acquireSettlementLock atomically updates the order status from PENDING to
// SETTLING and stores the payment details.
func (s *Store) acquireSettlementLock(ctx context.Context, orderID string, payment *models.PaymentDetails) error {
	paymentAV, err := attributevalue.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment details: %w", err)
	}
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal lock timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.OrdersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:    aws.String("SET #status = :settling_status, payment_details = :payment, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":settling_status": &types.AttributeValueMemberS{Value: string(models.SETTLING)},
			":pending_status":  &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":payment":         paymentAV,
			":now":             nowAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrOrderNotSettleable
		}
		return fmt.Errorf("failed to update order status to SETTLING: %w", err)
	}

	return nil
}

// CompleteFulfillment transitions a SETTLING order to PAID and applies the
// buyer fulfillment: purchased items appended, counters incremented. The
// order status condition makes a second completion a no-op failure, so the
// fulfillment worker can retry freely.
func (s *Store) CompleteFulfillment(ctx context.Context, order *models.Order) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for fulfillment: %w", err)
	}

	// Orders without items or an owning buyer only need the status flip.
	if len(order.Items) == 0 || order.UserID == "" {
		return s.markOrderPaid(ctx, order.ID, nowAV)
	}

	// 1. Get the current state of the buyer for optimistic locking.
	user, err := s.GetUser(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to get buyer for fulfillment: %w", err)
	}

	itemsAV, err := attributevalue.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	// 2. Construct the TransactWriteItems input covering both records.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Flip the order to PAID.
				Update: &types.Update{
					TableName:           aws.String(s.OrdersTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: order.ID}},
					UpdateExpression:    aws.String("SET #status = :paid_status, updated_at = :now"),
					ConditionExpression: aws.String("#status = :settling_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":paid_status":     &types.AttributeValueMemberS{Value: string(models.PAID)},
						":settling_status": &types.AttributeValueMemberS{Value: string(models.SETTLING)},
						":now":             nowAV,
					},
				},
			},
			{
				// Operation 2: Append the purchased items and bump the
				// buyer's aggregate counters.
				Update: &types.Update{
					TableName: aws.String(s.UsersTableName),
					Key:       map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: order.UserID}},
					UpdateExpression: aws.String("SET purchased_accounts = list_append(if_not_exists(purchased_accounts, :empty), :items), " +
						"stats.total_purchases = if_not_exists(stats.total_purchases, :zero) + :one, " +
						"stats.total_spent = if_not_exists(stats.total_spent, :zero) + :amount, " +
						"stats.accounts_purchased = if_not_exists(stats.accounts_purchased, :zero) + :item_count, " +
						"version = version + :one"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":items":      itemsAV,
						":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
						":amount":     &types.AttributeValueMemberN{Value: order.TotalAmount.Value},
						":item_count": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", len(order.Items))},
						":zero":       &types.AttributeValueMemberN{Value: "0"},
						":one":        &types.AttributeValueMemberN{Value: "1"},
						":version":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", user.Version)},
					},
				},
			},
		},
	}

	// 3. Execute the transaction.
	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to execute fulfillment transaction: %w", err)
	}

	return nil
}

// markOrderPaid flips a SETTLING order to PAID without touching any buyer
// record.
func (s *Store) markOrderPaid(ctx context.Context, orderID string, nowAV types.AttributeValue) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.OrdersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:    aws.String("SET #status = :paid_status, updated_at = :now"),
		ConditionExpression: aws.String("#status = :settling_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paid_status":     &types.AttributeValueMemberS{Value: string(models.PAID)},
			":settling_status": &types.AttributeValueMemberS{Value: string(models.SETTLING)},
			":now":             nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	return nil
}
