package notifications

import (
	"context"
	"errors"

	"github.com/fundlift/fundlift/internal/platform/bus"
	"github.com/fundlift/fundlift/internal/shared"
)

// BusService is the service name the notifications backend answers on.
const BusService = "notifications"

// Operation names on the bus.
const (
	opCreate     = "notifications.create"
	opGetUser    = "notifications.get_user"
	opGetUnread  = "notifications.get_unread"
	opCount      = "notifications.count"
	opMarkAsRead = "notifications.mark_as_read"
	opDelete     = "notifications.delete"
)

type userPayload struct {
	UserID string `json:"userId"`
}

type markPayload struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

// Client presents notification operations under one interface whether the
// backend runs in this process or behind the bus. The mode is decided once
// at construction.
type Client struct {
	channel *bus.Client
	local   *Service
}

// NewClient selects the execution mode. With a channel configured every
// call routes over it; otherwise every call executes against the local
// service.
func NewClient(local *Service, channel *bus.Client) *Client {
	return &Client{channel: channel, local: local}
}

func (c *Client) remote() bool {
	return c.channel != nil
}

// domainError restores the not-found sentinel after a bus crossing, so both
// execution modes present the same error to callers.
func domainError(err error) error {
	var remote *bus.RemoteError
	if errors.As(err, &remote) && remote.Message == shared.ErrNotFound.Error() {
		return shared.ErrNotFound
	}
	return err
}

// Create stores a notification for a user.
func (c *Client) Create(ctx context.Context, input CreateInput) (Notification, error) {
	if c.remote() {
		var n Notification
		err := c.channel.Call(ctx, opCreate, input, &n)
		return n, err
	}
	return c.local.Create(ctx, input)
}

// ForUser returns all of a user's notifications.
func (c *Client) ForUser(ctx context.Context, userID string) ([]Notification, error) {
	if c.remote() {
		var out []Notification
		err := c.channel.Call(ctx, opGetUser, userPayload{UserID: userID}, &out)
		return out, err
	}
	return c.local.ForUser(ctx, userID)
}

// UnreadForUser returns a user's unread notifications.
func (c *Client) UnreadForUser(ctx context.Context, userID string) ([]Notification, error) {
	if c.remote() {
		var out []Notification
		err := c.channel.Call(ctx, opGetUnread, userPayload{UserID: userID}, &out)
		return out, err
	}
	return c.local.UnreadForUser(ctx, userID)
}

// CountForUser summarizes a user's totals.
func (c *Client) CountForUser(ctx context.Context, userID string) (Count, error) {
	if c.remote() {
		var count Count
		err := c.channel.Call(ctx, opCount, userPayload{UserID: userID}, &count)
		return count, err
	}
	return c.local.CountForUser(ctx, userID)
}

// MarkAsRead flags a notification as read on behalf of its addressee.
func (c *Client) MarkAsRead(ctx context.Context, id, userID string) (Notification, error) {
	if c.remote() {
		var n Notification
		err := c.channel.Call(ctx, opMarkAsRead, markPayload{ID: id, UserID: userID}, &n)
		return n, domainError(err)
	}
	return c.local.MarkAsRead(ctx, id, userID)
}

// Remove deletes a notification on behalf of its addressee.
func (c *Client) Remove(ctx context.Context, id, userID string) error {
	if c.remote() {
		return domainError(c.channel.Call(ctx, opDelete, markPayload{ID: id, UserID: userID}, nil))
	}
	return c.local.Remove(ctx, id, userID)
}
