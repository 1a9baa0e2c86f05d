package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// LogoutUseCase persists the Offline status and last-seen timestamp when a
// user explicitly logs out. Socket disconnects take the asynchronous task
// path instead; logout is synchronous because the client waits on it.
type LogoutUseCase struct {
	Repo repository.UserRepository
}

func NewLogoutUseCase(repo repository.UserRepository) *LogoutUseCase {
	return &LogoutUseCase{Repo: repo}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	err := uc.Repo.UpdatePresence(ctx, userID, user.StatusOffline, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
