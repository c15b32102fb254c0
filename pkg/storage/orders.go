package storage

import (
	"context"

	"github.com/rhandyus/senjagames-sub001/pkg/models"
)

// OrderReader defines the interface for reading order data.
type OrderReader interface {
	// GetOrder retrieves an order by its transaction id. Returns
	// ErrOrderNotFound when no record exists.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}
