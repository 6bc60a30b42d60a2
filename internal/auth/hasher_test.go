package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost) // raised to the default internally

	digest, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.Contains(digest, "secret1") {
		t.Fatalf("digest must not embed the password")
	}
	if !hasher.Verify("secret1", digest) {
		t.Fatalf("expected digest to verify against its password")
	}
	if hasher.Verify("secret2", digest) {
		t.Fatalf("expected different password to fail verification")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher(bcrypt.DefaultCost)

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two digests of the same password must differ")
	}
	if !hasher.Verify("secret1", first) || !hasher.Verify("secret1", second) {
		t.Fatalf("both digests must verify against the password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewHasher(bcrypt.DefaultCost)
	if hasher.Verify("secret1", "not-a-bcrypt-digest") {
		t.Fatalf("malformed digest must verify as false")
	}
	if hasher.Verify("secret1", "") {
		t.Fatalf("empty digest must verify as false")
	}
}

func TestWeakCostIsRaised(t *testing.T) {
	hasher := NewHasher(2)
	if hasher.cost < bcrypt.DefaultCost {
		t.Fatalf("cost %d below bcrypt default", hasher.cost)
	}
}
