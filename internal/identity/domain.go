// Package identity orchestrates signup and login on top of the auth
// gateway and the user store.
package identity

import (
	"time"

	"github.com/fundlift/fundlift/internal/authz"
)

// User represents a user account record.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection returned to callers. It never carries the
// password digest.
type PublicUser struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      authz.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Public returns the caller-facing projection of the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
