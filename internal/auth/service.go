package auth

import (
	"context"

	"github.com/fundlift/fundlift/internal/authz"
)

// Gateway exposes the credential and token operations independent of where
// they execute. All three operations are idempotent delegations; the
// hashing parameters and signing key stay with the implementation.
type Gateway interface {
	HashPassword(ctx context.Context, password string) (string, error)
	ComparePasswords(ctx context.Context, password, digest string) (bool, error)
	GenerateToken(ctx context.Context, email, userID string, role authz.Role) (string, error)
}

// Service is the in-process Gateway implementation.
type Service struct {
	hasher Hasher
	issuer *Issuer
}

// NewService constructs the local gateway.
func NewService(hasher Hasher, issuer *Issuer) *Service {
	return &Service{hasher: hasher, issuer: issuer}
}

// HashPassword produces a salted one-way digest of the password.
func (s *Service) HashPassword(ctx context.Context, password string) (string, error) {
	return s.hasher.Hash(password)
}

// ComparePasswords verifies a password against a stored digest.
func (s *Service) ComparePasswords(ctx context.Context, password, digest string) (bool, error) {
	return s.hasher.Verify(password, digest), nil
}

// GenerateToken issues a signed identity token for the subject.
func (s *Service) GenerateToken(ctx context.Context, email, userID string, role authz.Role) (string, error) {
	return s.issuer.Issue(email, userID, role)
}

var _ Gateway = (*Service)(nil)
