package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// ErrUnknownToken is returned when a token does not resolve to an account.
var ErrUnknownToken = errors.New("auth: unknown token")

// DevAuthenticator treats the bearer token as a raw user id and resolves it
// against the account table. It stands in for the external token service in
// local development; production wires a real verifier behind the same port.
type DevAuthenticator struct {
	repo repository.UserRepository
}

func NewDevAuthenticator(pool *pgxpool.Pool) *DevAuthenticator {
	return &DevAuthenticator{repo: repoAdapter.NewPgUserRepository(pool)}
}

var _ auth.Authenticator = (*DevAuthenticator)(nil)

func (a *DevAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	u, err := a.repo.GetByID(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownToken
	}
	return &auth.Identity{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}, nil
}
