package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyEqual(t *testing.T) {
	t.Run("Exact Match", func(t *testing.T) {
		a := Money{Value: "50000.00", Currency: "IDR"}
		b := Money{Value: "50000.00", Currency: "IDR"}
		assert.True(t, a.Equal(b))
	})

	t.Run("Equivalent Decimal Forms", func(t *testing.T) {
		assert.True(t, Money{Value: "50000", Currency: "IDR"}.Equal(Money{Value: "50000.00", Currency: "IDR"}))
		assert.True(t, Money{Value: "0100.10", Currency: "IDR"}.Equal(Money{Value: "100.1", Currency: "IDR"}))
		assert.True(t, Money{Value: "0", Currency: "IDR"}.Equal(Money{Value: "0.00", Currency: "IDR"}))
	})

	t.Run("Off By A Cent", func(t *testing.T) {
		a := Money{Value: "99.99", Currency: "IDR"}
		b := Money{Value: "100.00", Currency: "IDR"}
		assert.False(t, a.Equal(b))
	})

	t.Run("Underpayment", func(t *testing.T) {
		a := Money{Value: "49999", Currency: "IDR"}
		b := Money{Value: "50000", Currency: "IDR"}
		assert.False(t, a.Equal(b))
	})

	t.Run("Currency Mismatch", func(t *testing.T) {
		a := Money{Value: "50000.00", Currency: "USD"}
		b := Money{Value: "50000.00", Currency: "IDR"}
		assert.False(t, a.Equal(b))
	})

	t.Run("Garbage Value Never Matches", func(t *testing.T) {
		a := Money{Value: "not-a-number", Currency: "IDR"}
		b := Money{Value: "50000.00", Currency: "IDR"}
		assert.False(t, a.Equal(b))
	})
}
