package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("defaults type to text and status to sent", func(t *testing.T) {
		msg, err := NewMessage(Message{
			ConversationID: "conv-1",
			Sender:         Sender{ID: "user-1", Username: "alice"},
			Body:           "  hello  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", msg.Body)
		assert.Equal(t, MessageTypeText, msg.MsgType)
		assert.Equal(t, StatusSent, msg.Status)
		assert.False(t, msg.CreatedAt.IsZero())
	})

	t.Run("rejects empty body without attachment", func(t *testing.T) {
		_, err := NewMessage(Message{
			ConversationID: "conv-1",
			Sender:         Sender{ID: "user-1"},
			Body:           "   ",
		})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("accepts empty body with attachment", func(t *testing.T) {
		url := "https://files.example.com/cat.png"
		msg, err := NewMessage(Message{
			ConversationID: "conv-1",
			Sender:         Sender{ID: "user-1"},
			MsgType:        MessageTypeImage,
			AttachmentURL:  &url,
		})
		require.NoError(t, err)
		assert.Equal(t, MessageTypeImage, msg.MsgType)
	})

	t.Run("rejects missing conversation or sender", func(t *testing.T) {
		_, err := NewMessage(Message{Sender: Sender{ID: "user-1"}, Body: "hi"})
		assert.Error(t, err)

		_, err = NewMessage(Message{ConversationID: "conv-1", Body: "hi"})
		assert.Error(t, err)
	})

	t.Run("rejects unknown message type", func(t *testing.T) {
		_, err := NewMessage(Message{
			ConversationID: "conv-1",
			Sender:         Sender{ID: "user-1"},
			Body:           "hi",
			MsgType:        MessageType("video"),
		})
		assert.Error(t, err)
	})
}

func TestMessageStatusCanAdvance(t *testing.T) {
	assert.True(t, StatusSent.CanAdvance(StatusDelivered))
	assert.True(t, StatusSent.CanAdvance(StatusRead))
	assert.True(t, StatusDelivered.CanAdvance(StatusRead))

	// re-applying the same state is allowed for idempotent sweeps
	assert.True(t, StatusDelivered.CanAdvance(StatusDelivered))
	assert.True(t, StatusRead.CanAdvance(StatusRead))

	// regressions are not
	assert.False(t, StatusRead.CanAdvance(StatusDelivered))
	assert.False(t, StatusRead.CanAdvance(StatusSent))
	assert.False(t, StatusDelivered.CanAdvance(StatusSent))

	assert.False(t, StatusSent.CanAdvance(MessageStatus("archived")))
}
