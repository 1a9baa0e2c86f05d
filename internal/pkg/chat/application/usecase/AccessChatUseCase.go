package usecase

import (
	"context"
	"fmt"
	"time"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// AccessChatInput identifies the caller and the user they want to talk to.
type AccessChatInput struct {
	CurrentUserID string
	TargetUserID  string
}

// AccessChatUseCase resolves the one-to-one conversation for a pair of
// users, creating it on first contact. The conversation is a singleton per
// unordered pair: repeated calls return the same id.
type AccessChatUseCase struct {
	Repo repository.ChatRepository
}

func NewAccessChatUseCase(repo repository.ChatRepository) *AccessChatUseCase {
	return &AccessChatUseCase{Repo: repo}
}

func (uc *AccessChatUseCase) Execute(ctx context.Context, in AccessChatInput) (*chat.Conversation, error) {
	if in.CurrentUserID == "" || in.TargetUserID == "" {
		return nil, fmt.Errorf("%w: current and target user ids are required", ErrValidation)
	}
	if in.CurrentUserID == in.TargetUserID {
		return nil, fmt.Errorf("%w: %v", ErrValidation, chat.ErrSelfChat)
	}

	existing, err := uc.Repo.FindDirectConversation(ctx, in.CurrentUserID, in.TargetUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return existing, nil
	}

	conv, err := chat.NewDirectConversation(in.CurrentUserID, in.TargetUserID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := uc.Repo.CreateConversation(ctx, *conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	conv.ID = id
	return conv, nil
}
