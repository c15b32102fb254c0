package storage

import (
	"context"
	"time"

	"github.com/rhandyus/senjagames-sub001/pkg/models"
)

// SettlementStore defines the privileged interface for settling an order.
// Settlement spans two records (the order and the buyer) and must be guarded
// against duplicate callback deliveries; implementations use a
// compare-and-set lock plus an atomic multi-record write.
type SettlementStore interface {
	OrderReader

	// SettleOrder marks the order paid and fulfills the buyer's purchase.
	// It returns a boolean indicating whether the settlement was actually
	// performed: false with a nil error means another delivery already
	// settled (or is settling) this order, which callers treat as success.
	SettleOrder(ctx context.Context, order *models.Order, payment *models.PaymentDetails) (bool, error)

	// CompleteFulfillment runs the second settlement phase (order SETTLING
	// to PAID plus buyer fulfillment) for an order whose lock phase already
	// recorded the payment details. Safe to retry; the status condition
	// rejects a second completion.
	CompleteFulfillment(ctx context.Context, order *models.Order) error

	// ListStaleSettlements retrieves orders stuck in SETTLING for longer
	// than maxAge, i.e. deliveries that crashed between the lock and the
	// fulfillment write.
	ListStaleSettlements(ctx context.Context, maxAge time.Duration) ([]models.Order, error)
}
