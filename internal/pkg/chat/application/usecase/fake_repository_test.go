package usecase

import (
	"context"
	"fmt"
	"sync"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// fakeChatRepository is an in-memory ChatRepository. All mutations run under
// one mutex so counter updates are atomic, matching the contract the SQL
// adapter provides with single-statement updates.
type fakeChatRepository struct {
	mu       sync.Mutex
	convs    map[string]*chat.Conversation
	messages map[string]*chat.Message
	seq      int
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		convs:    make(map[string]*chat.Conversation),
		messages: make(map[string]*chat.Message),
	}
}

func (f *fakeChatRepository) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeChatRepository) CreateConversation(_ context.Context, c chat.Conversation) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID("conv")
	f.convs[c.ID] = &c
	return c.ID, nil
}

func (f *fakeChatRepository) FindDirectConversation(_ context.Context, userA, userB string) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.IsGroup {
			continue
		}
		if c.HasParticipant(userA) && c.HasParticipant(userB) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepository) GetConversation(_ context.Context, id string) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.UnreadCounts = make(map[string]int, len(c.UnreadCounts))
	for k, v := range c.UnreadCounts {
		cp.UnreadCounts[k] = v
	}
	return &cp, nil
}

func (f *fakeChatRepository) ListConversationsForUser(_ context.Context, userID string) ([]chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []chat.Conversation
	for _, c := range f.convs {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChatRepository) ListParticipantIDs(_ context.Context, conversationID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[conversationID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), c.Participants...), nil
}

func (f *fakeChatRepository) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[conversationID]
	return ok && c.HasParticipant(userID), nil
}

func (f *fakeChatRepository) SaveMessage(_ context.Context, m chat.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.nextID("msg")
	f.messages[m.ID] = &m
	return m.ID, nil
}

func (f *fakeChatRepository) GetMessagesByConversation(_ context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []chat.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeChatRepository) ApplySendCounters(_ context.Context, conversationID, senderID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[conversationID]
	if !ok {
		return repository.ErrNoRows
	}
	for _, id := range c.Participants {
		if id == senderID {
			c.UnreadCounts[id] = 0
		} else {
			c.UnreadCounts[id]++
		}
	}
	c.LastMessageID = &messageID
	return nil
}

func (f *fakeChatRepository) ResetUnread(_ context.Context, conversationID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[conversationID]
	if !ok || !c.HasParticipant(userID) {
		return repository.ErrNoRows
	}
	c.UnreadCounts[userID] = 0
	return nil
}

func (f *fakeChatRepository) MarkMessagesRead(_ context.Context, conversationID, readerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.messages {
		if m.ConversationID != conversationID || m.Sender.ID == readerID {
			continue
		}
		if m.Status == chat.StatusSent || m.Status == chat.StatusDelivered {
			m.Status = chat.StatusRead
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepository) MarkMessageDelivered(_ context.Context, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[messageID]
	if ok && m.Status == chat.StatusSent {
		m.Status = chat.StatusDelivered
	}
	return nil
}

var _ repository.ChatRepository = (*fakeChatRepository)(nil)

// seedConversation inserts a conversation directly, bypassing validation.
func (f *fakeChatRepository) seedConversation(participants []string, isGroup bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID("conv")
	counts := make(map[string]int, len(participants))
	for _, p := range participants {
		counts[p] = 0
	}
	f.convs[id] = &chat.Conversation{
		ID:           id,
		IsGroup:      isGroup,
		Participants: append([]string(nil), participants...),
		UnreadCounts: counts,
	}
	return id
}
