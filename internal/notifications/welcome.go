package notifications

import (
	"context"
	"fmt"
	"strconv"
)

// WelcomeInput composes the post-signup welcome notification for a fresh
// account. Owned here so every delivery path produces the same message.
func WelcomeInput(userID, name string) CreateInput {
	return CreateInput{
		UserID:  userID,
		Title:   "Welcome to Fundlift",
		Message: fmt.Sprintf("Hi %s, your account is ready.", name),
		Type:    TypeSuccess,
	}
}

// WelcomeNotifier delivers the welcome notification through the client, so
// it lands in whichever store the configured mode reads from.
type WelcomeNotifier struct {
	client *Client
}

// NewWelcomeNotifier constructs a WelcomeNotifier.
func NewWelcomeNotifier(client *Client) *WelcomeNotifier {
	return &WelcomeNotifier{client: client}
}

// Welcome stores the welcome notification for a fresh account.
func (n *WelcomeNotifier) Welcome(ctx context.Context, userID int64, name string) error {
	_, err := n.client.Create(ctx, WelcomeInput(strconv.FormatInt(userID, 10), name))
	return err
}
