package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAward_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award("1", "", 0); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("expected ErrJWTSecretMissing, got %v", err)
	}
}

func TestAwardParse_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("80351110224678912", "nelly", time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims.Subject != "80351110224678912" || claims.Username != "nelly" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected a one hour lifetime, got %v", got)
	}
}

func TestParseToken_RejectsExpiredAndForeignTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	fallback, err := Award("1", "", -time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	// a negative ttl falls back to the default lifetime
	if _, _, err := ParseToken(fallback); err != nil {
		t.Fatalf("expected default ttl token to parse, got %v", err)
	}

	past := time.Now().Add(-2 * time.Hour)
	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}})
	signed, _ := stale.SignedString([]byte("test-secret-123"))
	if _, _, err := ParseToken(signed); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, _, err := ParseToken(fallback); err == nil {
		t.Fatalf("expected signature failure with another secret")
	}
}
