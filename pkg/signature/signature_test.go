package signature

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	body := []byte(`{"trxId":"T1","paidAmount":{"value":"50000.00","currency":"IDR"}}`)
	timestamp := "2024-06-01T10:00:00+07:00"
	path := "/v1/transfer-va/payment"

	v := NewVerifier("test-secret")

	t.Run("Round Trip", func(t *testing.T) {
		sig := v.Sign(http.MethodPost, path, body, timestamp)
		assert.True(t, v.Verify(http.MethodPost, path, body, timestamp, sig))
	})

	t.Run("Tampered Body", func(t *testing.T) {
		sig := v.Sign(http.MethodPost, path, body, timestamp)
		tampered := append([]byte(nil), body...)
		tampered[len(tampered)-2] = 'X'
		assert.False(t, v.Verify(http.MethodPost, path, tampered, timestamp, sig))
	})

	t.Run("Tampered Timestamp", func(t *testing.T) {
		sig := v.Sign(http.MethodPost, path, body, timestamp)
		assert.False(t, v.Verify(http.MethodPost, path, body, "2024-06-01T10:00:01+07:00", sig))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := NewVerifier("other-secret")
		sig := other.Sign(http.MethodPost, path, body, timestamp)
		assert.False(t, v.Verify(http.MethodPost, path, body, timestamp, sig))
	})

	t.Run("Reserialized Body Does Not Verify", func(t *testing.T) {
		// Same JSON content, different key order. The canonical string is
		// built from raw bytes, so this must fail.
		reordered := []byte(`{"paidAmount":{"value":"50000.00","currency":"IDR"},"trxId":"T1"}`)
		sig := v.Sign(http.MethodPost, path, body, timestamp)
		assert.False(t, v.Verify(http.MethodPost, path, reordered, timestamp, sig))
	})

	t.Run("Empty Signature", func(t *testing.T) {
		assert.False(t, v.Verify(http.MethodPost, path, body, timestamp, ""))
	})
}
