package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
)

func TestMarkReadUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("zeroes the reader and advances other senders' messages", func(t *testing.T) {
		repo := newFakeChatRepository()
		convID := repo.seedConversation([]string{"alice", "bob", "carol"}, true)
		send := NewSendMessageUseCase(repo)

		for _, sender := range []string{"bob", "carol", "alice"} {
			_, err := send.Execute(ctx, SendMessageInput{
				ConversationID: convID,
				Sender:         chat.Sender{ID: sender},
				Body:           "hi from " + sender,
			})
			require.NoError(t, err)
		}

		uc := NewMarkReadUseCase(repo)
		result, err := uc.Execute(ctx, MarkReadInput{UserID: "alice", ConversationID: convID})
		require.NoError(t, err)

		// bob's and carol's messages advanced; alice's own did not
		assert.Equal(t, int64(2), result.MessagesUpdated)
		assert.ElementsMatch(t, []string{"bob", "carol"}, result.OtherParticipants)

		conv, err := repo.GetConversation(ctx, convID)
		require.NoError(t, err)
		assert.Equal(t, 0, conv.UnreadFor("alice"))
		// other counters untouched by a read
		assert.Equal(t, 1, conv.UnreadFor("bob"))
		assert.Equal(t, 1, conv.UnreadFor("carol"))

		for _, m := range repo.messages {
			if m.Sender.ID == "alice" {
				assert.Equal(t, chat.StatusSent, m.Status)
			} else {
				assert.Equal(t, chat.StatusRead, m.Status)
			}
		}
	})

	t.Run("marking read twice is idempotent", func(t *testing.T) {
		repo := newFakeChatRepository()
		convID := repo.seedConversation([]string{"alice", "bob"}, false)
		send := NewSendMessageUseCase(repo)
		_, err := send.Execute(ctx, SendMessageInput{
			ConversationID: convID,
			Sender:         chat.Sender{ID: "bob"},
			Body:           "hello",
		})
		require.NoError(t, err)

		uc := NewMarkReadUseCase(repo)
		first, err := uc.Execute(ctx, MarkReadInput{UserID: "alice", ConversationID: convID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.MessagesUpdated)

		second, err := uc.Execute(ctx, MarkReadInput{UserID: "alice", ConversationID: convID})
		require.NoError(t, err)
		assert.Equal(t, int64(0), second.MessagesUpdated)
	})

	t.Run("missing conversation is not found", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewMarkReadUseCase(repo)

		_, err := uc.Execute(ctx, MarkReadInput{UserID: "alice", ConversationID: "no-such-conv"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-participant is not found", func(t *testing.T) {
		repo := newFakeChatRepository()
		convID := repo.seedConversation([]string{"alice", "bob"}, false)
		uc := NewMarkReadUseCase(repo)

		_, err := uc.Execute(ctx, MarkReadInput{UserID: "mallory", ConversationID: convID})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
