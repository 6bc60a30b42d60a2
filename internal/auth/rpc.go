package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fundlift/fundlift/internal/authz"
	"github.com/fundlift/fundlift/internal/platform/bus"
)

// RegisterHandlers exposes the local gateway's operations on the bus. The
// serving process holds the hashing parameters and signing key; remote
// callers only ever see digests and signed tokens.
func RegisterHandlers(srv *bus.Server, svc *Service) {
	srv.Handle(opHashPassword, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var password string
		if err := json.Unmarshal(payload, &password); err != nil {
			return nil, fmt.Errorf("decode password: %w", err)
		}
		return svc.HashPassword(ctx, password)
	})

	srv.Handle(opComparePasswords, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req comparePayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode compare payload: %w", err)
		}
		return svc.ComparePasswords(ctx, req.Password, req.Hash)
	})

	srv.Handle(opGenerateToken, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req tokenPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode token payload: %w", err)
		}
		return svc.GenerateToken(ctx, req.Email, req.UserID, authz.Role(req.Role))
	})
}
