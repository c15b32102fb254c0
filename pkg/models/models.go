package models

import (
	"strings"
	"time"
)

// OrderStatus defines the possible states of an order.
type OrderStatus string

const (
	PENDING  OrderStatus = "PENDING"
	SETTLING OrderStatus = "SETTLING"
	PAID     OrderStatus = "PAID"
	FAILED   OrderStatus = "FAILED"
)

// Money is a currency-tagged decimal amount. The value is kept as the
// processor's wire string and never parsed into a float.
type Money struct {
	Value    string `json:"value" dynamodbav:"value" validate:"required"`
	Currency string `json:"currency" dynamodbav:"currency" validate:"required"`
}

// Equal reports whether two amounts are exactly equal: same currency and
// numerically identical decimal values ("50000" equals "50000.00").
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && normalizeDecimal(m.Value) == normalizeDecimal(other.Value)
}

// normalizeDecimal reduces a decimal string to a canonical form so that
// equivalent representations compare equal. Unparseable input is returned
// as-is; a garbage amount then simply never matches a real one.
func normalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// PaymentDetails records how an order was paid. Populated exactly once,
// when the processor's callback settles the order.
type PaymentDetails struct {
	PaymentRequestID string    `dynamodbav:"payment_request_id"`
	ReferenceNo      string    `dynamodbav:"reference_no"`
	ExternalID       string    `dynamodbav:"external_id"`
	Channel          string    `dynamodbav:"channel,omitempty"`
	VirtualAccountNo string    `dynamodbav:"virtual_account_no,omitempty"`
	PaidAt           time.Time `dynamodbav:"paid_at"`
}

// Order represents the internal domain model for a purchase awaiting
// payment. It includes dynamodbav tags for marshalling.
type Order struct {
	ID             string          `dynamodbav:"id"`
	UserID         string          `dynamodbav:"user_id"`
	Items          []string        `dynamodbav:"items"`
	TotalAmount    Money           `dynamodbav:"total_amount"`
	Status         OrderStatus     `dynamodbav:"status"`
	PaymentDetails *PaymentDetails `dynamodbav:"payment_details,omitempty"`
	CreatedAt      time.Time       `dynamodbav:"created_at"`
	UpdatedAt      time.Time       `dynamodbav:"updated_at"`
}

// UserStats holds a buyer's aggregate purchase counters. All fields are
// monotonically non-decreasing.
type UserStats struct {
	TotalPurchases    int64   `dynamodbav:"total_purchases"`
	TotalSpent        float64 `dynamodbav:"total_spent"`
	AccountsPurchased int64   `dynamodbav:"accounts_purchased"`
}

// User represents a buyer. PurchasedAccounts is append-only from this
// service's perspective; Version supports optimistic locking.
type User struct {
	UserID            string    `dynamodbav:"user_id"`
	PurchasedAccounts []string  `dynamodbav:"purchased_accounts"`
	Stats             UserStats `dynamodbav:"stats"`
	Version           int64     `dynamodbav:"version"`
	CreatedAt         time.Time `dynamodbav:"created_at"`
}
