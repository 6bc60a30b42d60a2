package auth

import (
	"context"

	"github.com/fundlift/fundlift/internal/authz"
	"github.com/fundlift/fundlift/internal/platform/bus"
)

// BusService is the service name the auth gateway answers on.
const BusService = "auth"

// Operation names on the bus.
const (
	opHashPassword     = "hashPassword"
	opComparePasswords = "comparePasswords"
	opGenerateToken    = "generateToken"
)

type comparePayload struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

type tokenPayload struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// remoteGateway executes every operation over the service bus.
type remoteGateway struct {
	channel *bus.Client
}

func (g *remoteGateway) HashPassword(ctx context.Context, password string) (string, error) {
	var digest string
	if err := g.channel.Call(ctx, opHashPassword, password, &digest); err != nil {
		return "", err
	}
	return digest, nil
}

func (g *remoteGateway) ComparePasswords(ctx context.Context, password, digest string) (bool, error) {
	var match bool
	if err := g.channel.Call(ctx, opComparePasswords, comparePayload{Password: password, Hash: digest}, &match); err != nil {
		return false, err
	}
	return match, nil
}

func (g *remoteGateway) GenerateToken(ctx context.Context, email, userID string, role authz.Role) (string, error) {
	var token string
	payload := tokenPayload{Email: email, UserID: userID, Role: string(role)}
	if err := g.channel.Call(ctx, opGenerateToken, payload, &token); err != nil {
		return "", err
	}
	return token, nil
}

var _ Gateway = (*remoteGateway)(nil)

// NewGateway selects the execution mode once at construction. With a
// channel configured every call routes over it; without one every call
// executes in-process. The mode never changes at runtime, so a digest
// produced in one mode is always verified with the same backing state.
func NewGateway(local *Service, channel *bus.Client) Gateway {
	if channel != nil {
		return &remoteGateway{channel: channel}
	}
	return local
}
