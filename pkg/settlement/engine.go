package settlement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
)

// ReplayGuard detects duplicate callback deliveries by their idempotency
// key. It is advisory: the store's compare-and-set remains the
// authoritative guard, so implementations may fail open.
type ReplayGuard interface {
	// Seen reports whether the key was already processed.
	Seen(ctx context.Context, key string) (bool, error)

	// Mark records the key as processed.
	Mark(ctx context.Context, key string) error
}

// Request is a verified callback reduced to what settlement needs. The
// handler builds it after header, payload and signature checks have passed.
type Request struct {
	TrxID      string
	PaidAmount models.Money
	Payment    models.PaymentDetails
}

// Engine orchestrates the settlement of one verified payment callback:
// order lookup, exact amount verification and the atomic paid transition.
type Engine struct {
	store   storage.SettlementStore
	replays ReplayGuard
	logger  *slog.Logger
}

// NewEngine creates an Engine. replays may be nil, in which case duplicate
// deliveries are caught by the store's compare-and-set alone.
func NewEngine(store storage.SettlementStore, replays ReplayGuard, logger *slog.Logger) *Engine {
	return &Engine{store: store, replays: replays, logger: logger}
}

// Settle runs the settlement state machine and returns the terminal
// outcome. Business rejections are outcomes, not errors; only
// infrastructure failures map to OutcomeInternalError.
func (e *Engine) Settle(ctx context.Context, req Request) Outcome {
	if e.replays != nil && req.Payment.ExternalID != "" {
		seen, err := e.replays.Seen(ctx, req.Payment.ExternalID)
		if err != nil {
			e.logger.Warn("replay guard unavailable, relying on store guard",
				slog.String("trx_id", req.TrxID))
		} else if seen {
			e.logger.Info("duplicate delivery short-circuited",
				slog.String("trx_id", req.TrxID),
				slog.String("external_id", req.Payment.ExternalID))
			return OutcomeSettled
		}
	}

	order, err := e.store.GetOrder(ctx, req.TrxID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return OutcomeTransactionNotFound
		}
		e.logger.Error("order lookup failed", slog.String("trx_id", req.TrxID), slog.Any("error", err))
		return OutcomeInternalError
	}

	if !req.PaidAmount.Equal(order.TotalAmount) {
		e.logger.Warn("paid amount does not match order total",
			slog.String("trx_id", req.TrxID),
			slog.String("paid", req.PaidAmount.Value),
			slog.String("expected", order.TotalAmount.Value))
		return OutcomeAmountMismatch
	}

	payment := req.Payment
	settled, err := e.store.SettleOrder(ctx, order, &payment)
	if err != nil {
		e.logger.Error("settlement write failed", slog.String("trx_id", req.TrxID), slog.Any("error", err))
		return OutcomeInternalError
	}
	if !settled {
		// Another delivery holds or finished the settlement. Acknowledge so
		// the processor stops retrying; buyer counters stay incremented
		// exactly once.
		e.logger.Info("order already settled", slog.String("trx_id", req.TrxID))
		return OutcomeSettled
	}

	if e.replays != nil && req.Payment.ExternalID != "" {
		if err := e.replays.Mark(ctx, req.Payment.ExternalID); err != nil {
			e.logger.Warn("failed to record replay key", slog.String("trx_id", req.TrxID))
		}
	}

	e.logger.Info("order settled",
		slog.String("trx_id", req.TrxID),
		slog.String("amount", req.PaidAmount.Value),
		slog.String("currency", req.PaidAmount.Currency))
	return OutcomeSettled
}
