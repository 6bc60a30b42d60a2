package notifications

import (
	"context"
	"sync"

	"github.com/fundlift/fundlift/internal/shared"
)

// Repository defines persistence operations for notifications.
type Repository interface {
	Insert(ctx context.Context, n Notification) error
	ByUser(ctx context.Context, userID string) ([]Notification, error)
	Get(ctx context.Context, id string) (Notification, error)
	Update(ctx context.Context, n Notification) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps notifications in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Notification
	order []string
}

// NewMemoryStore constructs an empty in-memory repository.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]Notification)}
}

// Insert stores a new notification.
func (s *MemoryStore) Insert(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[n.ID] = n
	s.order = append(s.order, n.ID)
	return nil
}

// ByUser returns the user's notifications, newest first. Insertion order is
// the tiebreaker for equal timestamps.
func (s *MemoryStore) ByUser(ctx context.Context, userID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notification
	for i := len(s.order) - 1; i >= 0; i-- {
		if n, ok := s.byID[s.order[i]]; ok && n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// Get fetches one notification by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.byID[id]
	if !ok {
		return Notification{}, shared.ErrNotFound
	}
	return n, nil
}

// Update replaces a stored notification.
func (s *MemoryStore) Update(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[n.ID]; !ok {
		return shared.ErrNotFound
	}
	s.byID[n.ID] = n
	return nil
}

// Delete removes a notification by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

var _ Repository = (*MemoryStore)(nil)
