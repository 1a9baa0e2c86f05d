package usecase

import (
	"context"
	"fmt"
	"time"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// CreateGroupChatInput carries the group name and invited member ids; the
// creator is added automatically.
type CreateGroupChatInput struct {
	CreatorID string
	Name      string
	MemberIDs []string
}

// CreateGroupChatUseCase creates a group conversation with unread counters
// initialized to zero for every participant, creator included.
type CreateGroupChatUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateGroupChatUseCase(repo repository.ChatRepository) *CreateGroupChatUseCase {
	return &CreateGroupChatUseCase{Repo: repo}
}

func (uc *CreateGroupChatUseCase) Execute(ctx context.Context, in CreateGroupChatInput) (*chat.Conversation, error) {
	if in.CreatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", ErrValidation)
	}

	conv, err := chat.NewGroupConversation(in.Name, in.CreatorID, in.MemberIDs, time.Now().UTC())
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
