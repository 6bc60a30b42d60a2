package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fundlift/fundlift/internal/shared"
)

// Service wraps notification business rules over a repository.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new notification for a user.
func (s *Service) Create(ctx context.Context, input CreateInput) (Notification, error) {
	if input.UserID == "" {
		return Notification{}, fmt.Errorf("notifications: user id required")
	}
	if input.Type == "" {
		input.Type = TypeInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		ActionURL: input.ActionURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// ForUser returns all notifications addressed to the user.
func (s *Service) ForUser(ctx context.Context, userID string) ([]Notification, error) {
	return s.repo.ByUser(ctx, userID)
}

// UnreadForUser returns the user's unread notifications.
func (s *Service) UnreadForUser(ctx context.Context, userID string) ([]Notification, error) {
	all, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread := make([]Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

// CountForUser summarizes the user's totals.
func (s *Service) CountForUser(ctx context.Context, userID string) (Count, error) {
	all, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return Count{}, err
	}
	count := Count{Total: len(all)}
	for _, n := range all {
		if !n.Read {
			count.Unread++
		}
	}
	return count, nil
}

// MarkAsRead flags a notification as read. Only the addressee may mark it;
// anyone else sees not-found rather than a hint the id exists.
func (s *Service) MarkAsRead(ctx context.Context, id, userID string) (Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != userID {
		return Notification{}, shared.ErrNotFound
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Remove deletes a notification, addressee only.
func (s *Service) Remove(ctx context.Context, id, userID string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
