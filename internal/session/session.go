package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for unknown, expired or evicted
// tokens; the caller cannot distinguish the three.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state bound to one opaque bearer token.
type Session struct {
	UserID   string  `json:"user_id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	TenantID *string `json:"tenant_id,omitempty"`

	Permissions       []string `json:"permissions"`
	DashboardSections []string `json:"dashboard_sections"`

	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Registry maps opaque tokens to sessions.
//
// Get must treat an expired session as absent and evict it. Touch only
// refreshes LastActivity; it never extends ExpiresAt. Remove is
// idempotent.
type Registry interface {
	Put(ctx context.Context, token string, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Touch(ctx context.Context, token string) error
	Remove(ctx context.Context, token string) error
	RemoveAll(ctx context.Context) error

	// Sweep drops expired sessions eagerly. Backends whose storage
	// expires keys on its own may implement it as a no-op.
	Sweep(ctx context.Context) error
}
