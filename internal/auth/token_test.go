package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fundlift/fundlift/internal/authz"
)

const testSecret = "token-test-secret"

func TestIssuerConfiguration(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Fatalf("expected error for missing secret")
	}
	if _, err := NewIssuer(testSecret, 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
	if _, err := NewIssuer(testSecret, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}

	token, err := issuer.Issue("a@x.com", "7", authz.RoleCreator)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Contains(token, testSecret) {
		t.Fatalf("token must not embed the signing key")
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "a@x.com" || claims.Email != "a@x.com" {
		t.Fatalf("subject mismatch: %+v", claims)
	}
	if claims.UserID != "7" {
		t.Fatalf("user id mismatch: %q", claims.UserID)
	}
	if claims.Role != string(authz.RoleCreator) {
		t.Fatalf("role mismatch: %q", claims.Role)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatalf("expiry must be after issued-at")
	}
}

func TestTamperedTokenFailsVerification(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	token, err := issuer.Issue("a@x.com", "7", authz.RoleSupporter)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Swap the payload segment for one claiming a different role; the
	// signature no longer covers it.
	elevated, err := issuer.Issue("a@x.com", "7", authz.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(elevated, ".")
	forged := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := issuer.Parse(forged); err == nil {
		t.Fatalf("tampered token must fail verification")
	}
}

func TestWrongKeyFailsVerification(t *testing.T) {
	issuer, _ := NewIssuer(testSecret, time.Hour)
	other, _ := NewIssuer("a-different-secret", time.Hour)

	token, err := other.Issue("a@x.com", "7", authz.RoleSupporter)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatalf("token signed with another key must fail verification")
	}
}

func TestExpiredTokenFailsVerification(t *testing.T) {
	issuer, err := NewIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}

	// A structurally valid token whose expiry is already in the past,
	// signed with the right key.
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		Email:  "a@x.com",
		UserID: "7",
		Role:   string(authz.RoleSupporter),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Parse(expired); err == nil {
		t.Fatalf("expired token must fail verification")
	}
}

func TestUnsignedAlgorithmIsRejected(t *testing.T) {
	issuer, _ := NewIssuer(testSecret, time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "a@x.com", UserID: "7", Role: string(authz.RoleAdmin),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(unsigned); err == nil {
		t.Fatalf("alg=none token must be rejected")
	}
}
