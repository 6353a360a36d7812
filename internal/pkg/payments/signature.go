package payments

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"log"
	"strings"
)

var (
	ErrSignatureMissing  = errors.New("webhook signature token missing")
	ErrSignatureMismatch = errors.New("webhook signature mismatch")
)

// VerifySignature checks the hex HMAC-SHA1 of the exact raw request body
// against the token the provider sends out-of-band. It must run before any
// parsing of the body; the only thing it may look at is the byte slice
// itself. With no secret configured verification is skipped entirely, which
// is a degraded posture and logged as such.
func VerifySignature(rawBody []byte, signatureToken, secret string) error {
	if strings.TrimSpace(secret) == "" {
		log.Printf("payments: PAYMENT_WEBHOOK_SECRET not configured, accepting unverified webhook (body length %d)", len(rawBody))
		return nil
	}

	token := strings.TrimSpace(signatureToken)
	if token == "" {
		return ErrSignatureMissing
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(token))) {
		return ErrSignatureMismatch
	}
	return nil
}
