package usecase

import (
	"context"
	"fmt"
	"log/slog"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message. Sender
// display data comes from the authenticated identity so the pipeline never
// re-queries the full sender record.
type SendMessageInput struct {
	ConversationID string
	Sender         chat.Sender
	Body           string
	MsgType        chat.MessageType
	AttachmentURL  *string
}

// SendMessageUseCase is the message delivery pipeline: persist the message
// with status sent, then advance the conversation (last-message pointer and
// the unread protocol: sender to zero, everyone else +1). Realtime fan-out
// is not done here; the socket layer relays the created message when the
// client re-announces it.
//
// There is no rollback across the two steps: a message that persisted stays
// persisted even if the conversation update fails afterwards.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" || in.Sender.ID == "" {
		return nil, fmt.Errorf("%w: conversation id and sender are required", ErrValidation)
	}

	msg, err := chat.NewMessage(chat.Message{
		ConversationID: in.ConversationID,
		Sender:         in.Sender,
		Body:           in.Body,
		MsgType:        in.MsgType,
		AttachmentURL:  in.AttachmentURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		// The message was persisted against a conversation that does not
		// exist; counters and the last-message pointer cannot be updated.
		slog.Warn("send: conversation missing, skipping counter update",
			"conversation_id", in.ConversationID, "message_id", msg.ID)
		return msg, nil
	}

	if err := uc.Repo.ApplySendCounters(ctx, conv.ID, in.Sender.ID, msg.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}
