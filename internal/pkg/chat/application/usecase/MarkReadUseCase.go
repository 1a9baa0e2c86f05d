package usecase

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// MarkReadInput identifies the reading user and the conversation.
type MarkReadInput struct {
	UserID         string
	ConversationID string
}

// MarkReadResult reports what the pipeline changed and who should be told.
type MarkReadResult struct {
	MessagesUpdated int64
	// OtherParticipants are the ids to notify with the advisory
	// "messages read" event; delivery is best-effort.
	OtherParticipants []string
}

// MarkReadUseCase is the read-receipt pipeline: advance every other-sender
// message that is sent or delivered to read, then zero the reader's unread
// counter. The two updates are independent; neither depends on the
// notification that follows.
type MarkReadUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkReadUseCase(repo repository.ChatRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) (*MarkReadResult, error) {
	if in.UserID == "" || in.ConversationID == "" {
		return nil, fmt.Errorf("%w: user id and conversation id are required", ErrValidation)
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
	}

	updated, err := uc.Repo.MarkMessagesRead(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Repo.ResetUnread(ctx, in.ConversationID, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s is not a participant", ErrNotFound, in.UserID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &MarkReadResult{
		MessagesUpdated:   updated,
		OtherParticipants: conv.OtherParticipants(in.UserID),
	}, nil
}
