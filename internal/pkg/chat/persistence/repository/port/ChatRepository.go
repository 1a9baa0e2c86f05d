package repository

import (
	"context"
	"errors"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
)

// ErrNoRows is returned by targeted updates that matched nothing, e.g.
// resetting the counter of a user who is not a participant.
var ErrNoRows = errors.New("chat repository: no rows affected")

// ChatRepository defines persistence operations for the chat domain.
//
// Counter methods are the storage-side half of the unread protocol: they
// must be atomic per participant row (an in-place increment/reset, never a
// read-modify-write of the whole mapping) so concurrent sends into the same
// conversation cannot lose updates.
//
// Lookup methods return (nil, nil) when the entity does not exist; callers
// decide whether absence is an error.
type ChatRepository interface {
	// CreateConversation persists the conversation and one participant row
	// per member, each with unread_count zero, atomically.
	CreateConversation(ctx context.Context, c chat.Conversation) (string, error)

	// FindDirectConversation resolves the singleton one-to-one conversation
	// for the unordered pair, if it exists.
	FindDirectConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error)

	GetConversation(ctx context.Context, id string) (*chat.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID string) ([]chat.Conversation, error)
	ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	SaveMessage(ctx context.Context, m chat.Message) (string, error)
	GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error)

	// ApplySendCounters advances the conversation after a send: last-message
	// pointer moves to messageID, the sender's unread count resets to zero
	// and every other participant's increments by one.
	ApplySendCounters(ctx context.Context, conversationID, senderID, messageID string) error

	// ResetUnread zeroes the unread counter of one participant, leaving all
	// others untouched.
	ResetUnread(ctx context.Context, conversationID, userID string) error

	// MarkMessagesRead advances to read every message in the conversation
	// authored by someone other than readerID whose status is sent or
	// delivered. Returns the number of messages updated.
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error)

	// MarkMessageDelivered advances a single message from sent to delivered.
	// Messages already delivered or read are left alone.
	MarkMessageDelivered(ctx context.Context, messageID string) error
}
