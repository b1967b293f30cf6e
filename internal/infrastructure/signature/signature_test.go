package signature

import (
	"errors"
	"testing"
)

func TestHMACVerifierRoundTrip(t *testing.T) {
	v := NewHMACVerifier("whsec_test")
	payload := []byte(`{"kind":"settlement.completed","settlement_ref":"ref-1"}`)

	sig := v.Sign(payload)

	if err := v.Verify(payload, sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestHMACVerifierRejectsTamperedPayload(t *testing.T) {
	v := NewHMACVerifier("whsec_test")
	payload := []byte(`{"credits":50}`)
	sig := v.Sign(payload)

	err := v.Verify([]byte(`{"credits":5000}`), sig)
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestHMACVerifierRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"credits":50}`)
	sig := NewHMACVerifier("other-secret").Sign(payload)

	err := NewHMACVerifier("whsec_test").Verify(payload, sig)
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestHMACVerifierMissingSignature(t *testing.T) {
	v := NewHMACVerifier("whsec_test")

	err := v.Verify([]byte(`{}`), "")
	if !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestHMACVerifierRejectsNonHexSignature(t *testing.T) {
	v := NewHMACVerifier("whsec_test")

	err := v.Verify([]byte(`{}`), "not-hex!")
	if !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}
