package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fundlift/fundlift/internal/auth"
	"github.com/fundlift/fundlift/internal/authz"
	"github.com/fundlift/fundlift/internal/platform/bus"
	"github.com/fundlift/fundlift/internal/shared"
)

// dummyDigest is compared against when the account does not exist, so the
// unknown-user path costs the same as a wrong-password path.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Notifier delivers a post-signup notification. Delivery is best effort
// and never fails the signup.
type Notifier interface {
	Welcome(ctx context.Context, userID int64, name string) error
}

// Service wraps signup and login business rules. It reaches hashing and
// token issuance exclusively through the gateway; secret material never
// lives here.
type Service struct {
	repo     Repository
	gateway  auth.Gateway
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, gateway auth.Gateway, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, notifier: notifier, logger: logger}
}

// Signup registers a new account. An existing record for the email is a
// conflict, including when the duplicate only appears at the uniqueness
// constraint under a concurrent signup.
func (s *Service) Signup(ctx context.Context, email, name, password string) (PublicUser, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return PublicUser{}, shared.ErrConflict
	} else if !errors.Is(err, shared.ErrNotFound) {
		return PublicUser{}, fmt.Errorf("identity: lookup: %w", err)
	}

	digest, err := s.gateway.HashPassword(ctx, password)
	if err != nil {
		return PublicUser{}, maskTransport(err)
	}

	user, err := s.repo.Create(ctx, email, name, digest, authz.RoleSupporter)
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return PublicUser{}, shared.ErrConflict
		}
		return PublicUser{}, fmt.Errorf("identity: create user: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Welcome(ctx, user.ID, user.Name); err != nil && s.logger != nil {
			s.logger.Warn("welcome notification", slog.Int64("user_id", user.ID), slog.Any("error", err))
		}
	}

	return user.Public(), nil
}

// Login verifies credentials and issues a fresh identity token. Unknown
// account, deactivated account and wrong password are indistinguishable to
// the caller in both error shape and timing.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Burn the same verification cost as a real account.
			_, _ = s.gateway.ComparePasswords(ctx, password, dummyDigest)
			return "", shared.ErrInvalidCredentials
		}
		return "", maskTransport(err)
	}

	match, err := s.gateway.ComparePasswords(ctx, password, user.PasswordHash)
	if err != nil {
		return "", maskTransport(err)
	}
	if !match || !user.IsActive {
		return "", shared.ErrInvalidCredentials
	}

	token, err := s.gateway.GenerateToken(ctx, user.Email, fmt.Sprintf("%d", user.ID), user.Role)
	if err != nil {
		return "", maskTransport(err)
	}
	return token, nil
}

// Lookup fetches an account's public projection by email. Administrative
// use only; the HTTP route is mounted behind the user-management guard.
func (s *Service) Lookup(ctx context.Context, email string) (PublicUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return PublicUser{}, shared.ErrNotFound
		}
		return PublicUser{}, fmt.Errorf("identity: lookup: %w", err)
	}
	return user.Public(), nil
}

// maskTransport translates channel failures into a generic unavailability
// outcome so transport details never leak to the end user.
func maskTransport(err error) error {
	var remote *bus.RemoteError
	if errors.Is(err, bus.ErrTimeout) || errors.Is(err, bus.ErrChannel) || errors.As(err, &remote) {
		return shared.ErrUnavailable
	}
	return err
}
