package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessChatUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh one-to-one conversation", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewAccessChatUseCase(repo)

		conv, err := uc.Execute(ctx, AccessChatInput{CurrentUserID: "alice", TargetUserID: "bob"})
		require.NoError(t, err)
		assert.False(t, conv.IsGroup)
		assert.ElementsMatch(t, []string{"alice", "bob"}, conv.Participants)
		assert.Equal(t, 0, conv.UnreadFor("alice"))
		assert.Equal(t, 0, conv.UnreadFor("bob"))
	})

	t.Run("returns the existing conversation for the pair", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewAccessChatUseCase(repo)

		first, err := uc.Execute(ctx, AccessChatInput{CurrentUserID: "alice", TargetUserID: "bob"})
		require.NoError(t, err)

		// same pair in either order resolves to the same conversation
		second, err := uc.Execute(ctx, AccessChatInput{CurrentUserID: "bob", TargetUserID: "alice"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.convs, 1)
	})

	t.Run("rejects chatting with yourself", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewAccessChatUseCase(repo)

		_, err := uc.Execute(ctx, AccessChatInput{CurrentUserID: "alice", TargetUserID: "alice"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCreateGroupChatUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a group with the creator included", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewCreateGroupChatUseCase(repo)

		conv, err := uc.Execute(ctx, CreateGroupChatInput{
			CreatorID: "alice",
			Name:      "weekend plans",
			MemberIDs: []string{"bob", "carol"},
		})
		require.NoError(t, err)
		assert.True(t, conv.IsGroup)
		assert.True(t, conv.HasParticipant("alice"))
		assert.Len(t, conv.Participants, 3)
	})

	t.Run("rejects groups that are too small", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewCreateGroupChatUseCase(repo)

		_, err := uc.Execute(ctx, CreateGroupChatInput{
			CreatorID: "alice",
			Name:      "just us",
			MemberIDs: []string{"bob"},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		repo := newFakeChatRepository()
		uc := NewCreateGroupChatUseCase(repo)

		_, err := uc.Execute(ctx, CreateGroupChatInput{
			CreatorID: "alice",
			MemberIDs: []string{"bob", "carol"},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
