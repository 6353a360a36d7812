package payments

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"testing"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValidToken(t *testing.T) {
	body := []byte(`{"order_status":"paid"}`)
	secret := "top-secret"

	if err := VerifySignature(body, signBody(body, secret), secret); err != nil {
		t.Fatalf("expected valid signature to pass, got %v", err)
	}
}

func TestVerifySignatureIsCaseInsensitive(t *testing.T) {
	body := []byte(`{"order_status":"paid"}`)
	secret := "top-secret"
	token := strings.ToUpper(signBody(body, secret))

	if err := VerifySignature(body, token, secret); err != nil {
		t.Fatalf("expected uppercase hex token to pass, got %v", err)
	}
}

func TestVerifySignatureRejectsMutatedBody(t *testing.T) {
	body := []byte(`{"order_status":"paid"}`)
	secret := "top-secret"
	token := signBody(body, secret)

	mutated := append([]byte(nil), body...)
	mutated[0] ^= 0x01

	if err := VerifySignature(mutated, token, secret); err != ErrSignatureMismatch {
		t.Fatalf("expected mismatch for mutated body, got %v", err)
	}
}

func TestVerifySignatureRejectsMissingToken(t *testing.T) {
	if err := VerifySignature([]byte(`{}`), "", "top-secret"); err != ErrSignatureMissing {
		t.Fatalf("expected missing-token error, got %v", err)
	}
	if err := VerifySignature([]byte(`{}`), "   ", "top-secret"); err != ErrSignatureMissing {
		t.Fatalf("expected missing-token error for blank token, got %v", err)
	}
}

func TestVerifySignatureSkippedWithoutSecret(t *testing.T) {
	if err := VerifySignature([]byte(`{}`), "", ""); err != nil {
		t.Fatalf("expected no-secret configuration to skip verification, got %v", err)
	}
}

func TestVerifySignatureRejectsWrongToken(t *testing.T) {
	if err := VerifySignature([]byte(`{}`), "deadbeef", "top-secret"); err != ErrSignatureMismatch {
		t.Fatalf("expected mismatch for bogus token, got %v", err)
	}
}
