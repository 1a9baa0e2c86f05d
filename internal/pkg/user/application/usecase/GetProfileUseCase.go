package usecase

import (
	"context"
	"fmt"

	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// GetProfileUseCase fetches the caller's own account record.
type GetProfileUseCase struct {
	Repo repository.UserRepository
}

func NewGetProfileUseCase(repo repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Repo: repo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	u, err := uc.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return u, nil
}
