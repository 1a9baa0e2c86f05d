package usecase

import (
	"context"
	"fmt"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// FetchChatsInput wraps the caller id.
type FetchChatsInput struct {
	UserID string
}

// FetchChatsUseCase lists the caller's conversations, most recently updated
// first, with last-message previews and unread counters hydrated.
type FetchChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewFetchChatsUseCase(repo repository.ChatRepository) *FetchChatsUseCase {
	return &FetchChatsUseCase{Repo: repo}
}

func (uc *FetchChatsUseCase) Execute(ctx context.Context, in FetchChatsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	convs, err := uc.Repo.ListConversationsForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
