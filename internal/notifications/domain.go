// Package notifications stores and serves per-user notifications. The
// service can run in-process or in a separate worker behind the bus; the
// Client hides which one is configured.
package notifications

import "time"

// Type classifies a notification for presentation.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is a single message addressed to a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	ActionURL string    `json:"actionUrl,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateInput carries the fields needed to create a notification.
type CreateInput struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      Type   `json:"type"`
	ActionURL string `json:"actionUrl,omitempty"`
}

// Count summarizes a user's notification totals.
type Count struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}
