package scheduler

import (
	"context"
)

// FulfillmentJob is the message enqueued for the fulfillment worker: an
// order whose settlement lock is held but whose fulfillment write has not
// landed yet.
type FulfillmentJob struct {
	JobID   string `json:"job_id"`
	OrderID string `json:"order_id"`
}

// Scheduler defines the interface for a component that queues an order for
// asynchronous fulfillment completion.
type Scheduler interface {
	// ScheduleFulfillment enqueues the order for the fulfillment worker.
	ScheduleFulfillment(ctx context.Context, orderID string) error
}
