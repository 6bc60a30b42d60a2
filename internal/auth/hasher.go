// Package auth implements credential hashing, identity token issuance and
// the gateway through which the rest of the platform reaches them. The
// gateway runs either in-process or behind the service bus; callers see one
// interface either way.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing with a configured work factor.
type Hasher struct {
	cost int
}

// NewHasher constructs a hasher. Costs below the bcrypt default are raised
// to it; a weak work factor is never honored.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash produces a salted digest of the password. Two calls on the same
// password yield different digests; both verify.
func (h Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(digest), nil
}

// Verify recomputes the digest using the parameters embedded in it and
// compares in constant time. Malformed digests verify as false, never as
// an error.
func (h Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
