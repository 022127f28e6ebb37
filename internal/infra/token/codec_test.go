package token

import (
	"errors"
	"testing"
	"time"

	"biblio/internal/domain"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	issued := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	codec, err := NewCodec("test-secret", time.Hour, WithClock(func() time.Time { return issued }))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	tok, err := codec.Sign("1", domain.RoleBasic)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleBasic {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.IssuedAt.Equal(issued) {
		t.Fatalf("unexpected issued at: %s", claims.IssuedAt)
	}
	if !claims.ExpiresAt.Equal(issued.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", claims.ExpiresAt)
	}
}

func TestVerify_TamperEvidence(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	tok, err := codec.Sign("42", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for i := 0; i < len(tok); i++ {
		mutated := []byte(tok)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if _, err := codec.Verify(string(mutated)); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("mutation at %d accepted", i)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, _ := NewCodec("secret-a", time.Hour)
	verifier, _ := NewCodec("secret-b", time.Hour)

	tok, err := signer.Sign("1", domain.RoleBasic)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_ReturnsExpiredClaims(t *testing.T) {
	// The codec hands expired claim sets back untouched; expiry is the
	// authentication stage's call.
	past := time.Now().Add(-2 * time.Hour)
	codec, err := NewCodec("test-secret", time.Hour, WithClock(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	tok, err := codec.Sign("1", domain.RoleBasic)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.ExpiresAt.Before(time.Now()) {
		t.Fatal("expected an already-expired claim set")
	}
}

func TestVerify_Garbage(t *testing.T) {
	codec, _ := NewCodec("test-secret", time.Hour)
	cases := []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c.d",
		"!!!.@@@.###",
	}
	for _, tc := range cases {
		if _, err := codec.Verify(tc); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("garbage %q accepted", tc)
		}
	}
}

func TestSign_EmptySubject(t *testing.T) {
	codec, _ := NewCodec("test-secret", time.Hour)
	if _, err := codec.Sign("", domain.RoleBasic); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestNewCodec_Validation(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewCodec("secret", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
