package auth

import "testing"

func TestVerifyPlain(t *testing.T) {
	v := NewVerifier("sesame-open", "")

	if !v.Verify("sesame-open") {
		t.Fatal("expected matching passphrase to verify")
	}
	if v.Verify("wrong") {
		t.Fatal("expected mismatch to fail")
	}
	if v.Verify("") {
		t.Fatal("expected empty code to fail")
	}
}

func TestVerifyBcryptHashWins(t *testing.T) {
	hash, err := HashPassphrase("sesame-open")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	// Plain is deliberately different: the hash must take precedence.
	v := NewVerifier("other", hash)

	if !v.Verify("sesame-open") {
		t.Fatal("expected hash match to verify")
	}
	if v.Verify("other") {
		t.Fatal("expected plain fallback to be ignored when hash is set")
	}
}

func TestVerifyNothingConfigured(t *testing.T) {
	v := NewVerifier("", "")

	if v.Verify("anything") {
		t.Fatal("expected verification to fail with no passphrase configured")
	}
}
