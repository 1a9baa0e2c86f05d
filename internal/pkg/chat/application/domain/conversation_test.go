package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectConversation(t *testing.T) {
	now := time.Now().UTC()

	t.Run("initializes both counters to zero", func(t *testing.T) {
		conv, err := NewDirectConversation("user-a", "user-b", now)
		require.NoError(t, err)
		assert.False(t, conv.IsGroup)
		assert.ElementsMatch(t, []string{"user-a", "user-b"}, conv.Participants)
		assert.Equal(t, 0, conv.UnreadFor("user-a"))
		assert.Equal(t, 0, conv.UnreadFor("user-b"))
	})

	t.Run("rejects chatting with yourself", func(t *testing.T) {
		_, err := NewDirectConversation("user-a", "user-a", now)
		assert.ErrorIs(t, err, ErrSelfChat)
	})

	t.Run("rejects empty participants", func(t *testing.T) {
		_, err := NewDirectConversation("", "user-b", now)
		assert.ErrorIs(t, err, ErrEmptyParticipants)
	})
}

func TestNewGroupConversation(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creator is always a member with a zero counter", func(t *testing.T) {
		conv, err := NewGroupConversation("team", "creator", []string{"user-a", "user-b"}, now)
		require.NoError(t, err)
		assert.True(t, conv.IsGroup)
		assert.True(t, conv.HasParticipant("creator"))
		for _, id := range conv.Participants {
			assert.Equal(t, 0, conv.UnreadFor(id))
		}
	})

	t.Run("duplicate members are collapsed", func(t *testing.T) {
		conv, err := NewGroupConversation("team", "creator", []string{"user-a", "user-a", "user-b", "creator"}, now)
		require.NoError(t, err)
		assert.Len(t, conv.Participants, 3)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewGroupConversation("", "creator", []string{"user-a", "user-b"}, now)
		assert.ErrorIs(t, err, ErrGroupNameRequired)
	})

	t.Run("requires at least three members", func(t *testing.T) {
		_, err := NewGroupConversation("pair", "creator", []string{"user-a"}, now)
		assert.ErrorIs(t, err, ErrGroupTooSmall)
	})
}

func TestConversationAccessors(t *testing.T) {
	conv := Conversation{
		Participants: []string{"a", "b", "c"},
		UnreadCounts: map[string]int{"a": 2, "b": 0},
	}

	assert.True(t, conv.HasParticipant("b"))
	assert.False(t, conv.HasParticipant("d"))

	assert.Equal(t, 2, conv.UnreadFor("a"))
	assert.Equal(t, 0, conv.UnreadFor("c"))
	assert.Equal(t, 0, conv.UnreadFor("missing"))

	assert.ElementsMatch(t, []string{"b", "c"}, conv.OtherParticipants("a"))
}
