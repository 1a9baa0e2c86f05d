package chat

import "time"

// Conversation is a one-to-one or group messaging context. Membership is
// fixed at creation. The per-participant unread counters live on the
// conversation; every participant id is present as a key, counts never go
// negative, and a missing key reads as zero.
type Conversation struct {
	ID            string         `json:"_id"`
	IsGroup       bool           `json:"isGroup"`
	Name          *string        `json:"name,omitempty"`
	Participants  []string       `json:"participants"`
	LastMessageID *string        `json:"lastMessage,omitempty"`
	UnreadCounts  map[string]int `json:"unreadCounts"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	// LastMessage is hydrated by list queries for chat-overview payloads.
	LastMessage *Message `json:"lastMessagePreview,omitempty"`
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// UnreadFor returns the unread count for userID, treating absence as zero.
func (c *Conversation) UnreadFor(userID string) int {
	if c.UnreadCounts == nil {
		return 0
	}
	return c.UnreadCounts[userID]
}

// OtherParticipants returns every participant id except userID.
func (c *Conversation) OtherParticipants(userID string) []string {
	others := make([]string, 0, len(c.Participants))
	for _, id := range c.Participants {
		if id != userID {
			others = append(others, id)
		}
	}
	return others
}

// NewDirectConversation shapes a one-to-one conversation between two users
// with both unread counters initialized to zero. Uniqueness per pair is
// enforced by the directory lookup before creation.
func NewDirectConversation(userA, userB string, now time.Time) (*Conversation, error) {
	if userA == "" || userB == "" {
		return nil, ErrEmptyParticipants
	}
	if userA == userB {
		return nil, ErrSelfChat
	}
	return &Conversation{
		IsGroup:      false,
		Participants: []string{userA, userB},
		UnreadCounts: map[string]int{userA: 0, userB: 0},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewGroupConversation shapes a group conversation. The creator is always a
// member; counters start at zero for everyone, creator included.
func NewGroupConversation(name string, creatorID string, memberIDs []string, now time.Time) (*Conversation, error) {
	if name == "" {
		return nil, ErrGroupNameRequired
	}
	members := dedupe(append(memberIDs, creatorID))
	if len(members) < 3 {
		return nil, ErrGroupTooSmall
	}
	counts := make(map[string]int, len(members))
	for _, id := range members {
		counts[id] = 0
	}
	return &Conversation{
		IsGroup:      true,
		Name:         &name,
		Participants: members,
		UnreadCounts: counts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
