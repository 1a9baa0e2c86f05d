package usecase

import (
	"context"
	"fmt"

	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// SearchUsersInput carries the search keyword and the caller to exclude.
type SearchUsersInput struct {
	Keyword       string
	CurrentUserID string
}

// SearchUsersUseCase finds users by username or email, excluding the caller.
// An empty keyword returns no results rather than the whole directory.
type SearchUsersUseCase struct {
	Repo repository.UserRepository
}

func NewSearchUsersUseCase(repo repository.UserRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{Repo: repo}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, in SearchUsersInput) ([]user.User, error) {
	if in.CurrentUserID == "" {
		return nil, fmt.Errorf("%w: current user id is required", ErrValidation)
	}
	if in.Keyword == "" {
		return []user.User{}, nil
	}
	users, err := uc.Repo.Search(ctx, in.Keyword, in.CurrentUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
