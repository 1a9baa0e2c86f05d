package chat

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrNotParticipant = errors.New("chat: user is not a participant in the conversation")
	ErrEmptyMessage   = errors.New("chat: message body is required")
	ErrSelfChat       = errors.New("chat: cannot start a chat with yourself")
)

// MessageType tags the content payload.
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// MessageStatus is the delivery state of a message. Transitions are
// monotonic: sent -> delivered -> read, never backwards.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// statusRank orders the delivery lattice for monotonicity checks.
func statusRank(s MessageStatus) int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	}
	return -1
}

// CanAdvance reports whether moving from s to next respects the
// sent -> delivered -> read ordering. Equal states are allowed (idempotent
// sweeps), regressions are not.
func (s MessageStatus) CanAdvance(next MessageStatus) bool {
	return statusRank(next) >= statusRank(s) && statusRank(next) >= 0 && statusRank(s) >= 0
}

// Sender is the minimal display data attached to a message for immediate
// client consumption, avoiding a re-query of the full user record.
type Sender struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Message is a log entry in a conversation. Created on send; only its
// status ever changes afterwards.
type Message struct {
	ID             string        `json:"_id"`
	ConversationID string        `json:"chatId"`
	Sender         Sender        `json:"senderId"`
	Body           string        `json:"content"`
	MsgType        MessageType   `json:"type"`
	AttachmentURL  *string       `json:"fileUrl,omitempty"`
	Status         MessageStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// NewMessage validates input and returns a message ready to persist with
// status sent. Type defaults to text when unset.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" || m.Sender.ID == "" {
		return nil, errors.New("chat: conversation id and sender id are required")
	}

	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" && m.AttachmentURL == nil {
		return nil, ErrEmptyMessage
	}

	if m.MsgType == "" {
		m.MsgType = MessageTypeText
	}
	switch m.MsgType {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
	default:
		return nil, errors.New("chat: unknown message type")
	}

	m.Status = StatusSent
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return &m, nil
}
