package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks that an inbound callback was signed by the payment
// processor. The shared secret is injected at construction and never leaves
// this package.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given pre-shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// canonicalString builds the exact byte sequence both sides sign: the HTTP
// method, the callback path, the raw request body and the timestamp header,
// newline-separated. The body must be the wire bytes as received;
// re-serializing a parsed struct can silently change key order or
// whitespace and break verification.
func canonicalString(method, path string, body []byte, timestamp string) []byte {
	out := make([]byte, 0, len(method)+len(path)+len(body)+len(timestamp)+3)
	out = append(out, method...)
	out = append(out, '\n')
	out = append(out, path...)
	out = append(out, '\n')
	out = append(out, body...)
	out = append(out, '\n')
	out = append(out, timestamp...)
	return out
}

// Sign computes the hex-encoded HMAC-SHA256 over the canonical string.
// Exported so tests and outbound tooling can produce valid signatures.
func (v *Verifier) Sign(method, path string, body []byte, timestamp string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(canonicalString(method, path, body, timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether the supplied signature matches the one computed
// over the request. The comparison is constant-time.
func (v *Verifier) Verify(method, path string, body []byte, timestamp, supplied string) bool {
	expected := v.Sign(method, path, body, timestamp)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
