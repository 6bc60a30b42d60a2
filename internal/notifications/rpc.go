package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fundlift/fundlift/internal/platform/bus"
)

// RegisterHandlers exposes the service's operations on the bus for remote
// deployments.
func RegisterHandlers(srv *bus.Server, svc *Service) {
	srv.Handle(opCreate, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input CreateInput
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, fmt.Errorf("decode create payload: %w", err)
		}
		return svc.Create(ctx, input)
	})

	srv.Handle(opGetUser, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req userPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode user payload: %w", err)
		}
		return svc.ForUser(ctx, req.UserID)
	})

	srv.Handle(opGetUnread, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req userPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode user payload: %w", err)
		}
		return svc.UnreadForUser(ctx, req.UserID)
	})

	srv.Handle(opCount, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req userPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode user payload: %w", err)
		}
		return svc.CountForUser(ctx, req.UserID)
	})

	srv.Handle(opMarkAsRead, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req markPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode mark payload: %w", err)
		}
		return svc.MarkAsRead(ctx, req.ID, req.UserID)
	})

	srv.Handle(opDelete, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req markPayload
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("decode mark payload: %w", err)
		}
		if err := svc.Remove(ctx, req.ID, req.UserID); err != nil {
			return nil, err
		}
		return map[string]bool{"success": true}, nil
	})
}
