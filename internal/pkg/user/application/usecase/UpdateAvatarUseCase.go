package usecase

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// UpdateAvatarInput carries the caller id and the new avatar URL.
type UpdateAvatarInput struct {
	UserID    string
	AvatarURL string
}

// UpdateAvatarUseCase stores a new avatar URL for the caller.
type UpdateAvatarUseCase struct {
	Repo repository.UserRepository
}

func NewUpdateAvatarUseCase(repo repository.UserRepository) *UpdateAvatarUseCase {
	return &UpdateAvatarUseCase{Repo: repo}
}

func (uc *UpdateAvatarUseCase) Execute(ctx context.Context, in UpdateAvatarInput) error {
	if in.UserID == "" || in.AvatarURL == "" {
		return fmt.Errorf("%w: user id and avatar url are required", ErrValidation)
	}
	if err := uc.Repo.UpdateAvatar(ctx, in.UserID, in.AvatarURL); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return fmt.Errorf("%w: user %s", ErrNotFound, in.UserID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
