package repository

import (
	"context"
	"errors"
	"time"

	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
)

// ErrNoRows is returned by targeted updates that matched no user.
var ErrNoRows = errors.New("user repository: no rows affected")

// UserRepository defines persistence operations for user accounts.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*user.User, error)

	// Search matches keyword against username and email, case-insensitive,
	// excluding excludeID from the results.
	Search(ctx context.Context, keyword, excludeID string) ([]user.User, error)

	UpdateAvatar(ctx context.Context, id, avatarURL string) error

	// UpdatePresence persists the account status field and last-seen
	// timestamp. Called from the logout path and the background presence
	// task driven by socket lifecycle events.
	UpdatePresence(ctx context.Context, id string, status user.Status, lastSeen time.Time) error
}
