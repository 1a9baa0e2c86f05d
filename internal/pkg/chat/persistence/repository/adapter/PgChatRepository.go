package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/domain"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository persists conversations, participants and messages in
// Postgres. Unread counters are a column on the participant row, updated
// in place so concurrent sends never lose increments.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO chat.conversation (is_group, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id::text
	`, c.IsGroup, c.Name, c.CreatedAt).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, userID := range c.Participants {
		_, err = tx.Exec(ctx, `
			INSERT INTO chat.participant (conversation_id, user_id, unread_count)
			VALUES ($1::uuid, $2::uuid, 0)
			ON CONFLICT (conversation_id, user_id) DO NOTHING
		`, id, userID)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PgChatRepository) FindDirectConversation(ctx context.Context, userA, userB string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	// Direct conversations always have exactly two participants by
	// construction, so both-present is sufficient.
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT c.id::text
		FROM chat.conversation c
		WHERE c.is_group = false
		  AND EXISTS (SELECT 1 FROM chat.participant p WHERE p.conversation_id = c.id AND p.user_id = $1::uuid)
		  AND EXISTS (SELECT 1 FROM chat.participant p WHERE p.conversation_id = c.id AND p.user_id = $2::uuid)
		LIMIT 1
	`, userA, userB).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetConversation(ctx, id)
}

func (r *PgChatRepository) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	c := chat.Conversation{UnreadCounts: make(map[string]int)}
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, is_group, name, last_message_id::text, created_at, updated_at
		FROM chat.conversation
		WHERE id = $1::uuid
	`, id).Scan(&c.ID, &c.IsGroup, &c.Name, &c.LastMessageID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text, unread_count
		FROM chat.participant
		WHERE conversation_id = $1::uuid
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var unread int
		if err := rows.Scan(&userID, &unread); err != nil {
			return nil, err
		}
		c.Participants = append(c.Participants, userID)
		c.UnreadCounts[userID] = unread
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return &c, nil
}

func (r *PgChatRepository) ListConversationsForUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.is_group, c.name, c.last_message_id::text, c.created_at, c.updated_at,
		       m.id::text, m.sender_id::text, u.username, u.avatar_url, m.body, m.msg_type, m.attachment_url, m.status, m.created_at
		FROM chat.conversation c
		JOIN chat.participant me ON me.conversation_id = c.id AND me.user_id = $1::uuid
		LEFT JOIN chat.message m ON m.id = c.last_message_id
		LEFT JOIN chat.app_user u ON u.id = m.sender_id
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		c := chat.Conversation{UnreadCounts: make(map[string]int)}
		var (
			lmID, lmSenderID, lmSenderName *string
			lmAvatar, lmBody, lmType       *string
			lmAttachment, lmStatus         *string
			lmCreatedAt                    *time.Time
		)
		if err := rows.Scan(&c.ID, &c.IsGroup, &c.Name, &c.LastMessageID, &c.CreatedAt, &c.UpdatedAt,
			&lmID, &lmSenderID, &lmSenderName, &lmAvatar, &lmBody, &lmType, &lmAttachment, &lmStatus, &lmCreatedAt); err != nil {
			return nil, err
		}
		if lmID != nil {
			msg := chat.Message{
				ID:             *lmID,
				ConversationID: c.ID,
				Body:           deref(lmBody),
				MsgType:        chat.MessageType(deref(lmType)),
				AttachmentURL:  lmAttachment,
				Status:         chat.MessageStatus(deref(lmStatus)),
			}
			msg.Sender = chat.Sender{ID: deref(lmSenderID), Username: deref(lmSenderName), AvatarURL: deref(lmAvatar)}
			if lmCreatedAt != nil {
				msg.CreatedAt = *lmCreatedAt
			}
			c.LastMessage = &msg
		}
		convs = append(convs, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	// Hydrate participants and counters in one pass over all fetched ids.
	if len(convs) == 0 {
		return convs, nil
	}
	ids := make([]string, len(convs))
	index := make(map[string]*chat.Conversation, len(convs))
	for i := range convs {
		ids[i] = convs[i].ID
		index[convs[i].ID] = &convs[i]
	}
	prows, err := r.pool.Query(ctx, `
		SELECT conversation_id::text, user_id::text, unread_count
		FROM chat.participant
		WHERE conversation_id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var convID, uid string
		var unread int
		if err := prows.Scan(&convID, &uid, &unread); err != nil {
			return nil, err
		}
		if c, ok := index[convID]; ok {
			c.Participants = append(c.Participants, uid)
			c.UnreadCounts[uid] = unread
		}
	}
	if prows.Err() != nil {
		return nil, prows.Err()
	}
	return convs, nil
}

func (r *PgChatRepository) ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text FROM chat.participant WHERE conversation_id = $1::uuid
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM chat.participant
			WHERE conversation_id = $1::uuid AND user_id = $2::uuid
		)
	`, conversationID, userID).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, body, msg_type, attachment_url, status, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7)
		RETURNING id::text
	`, m.ConversationID, m.Sender.ID, m.Body, string(m.MsgType), m.AttachmentURL, string(m.Status), m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.conversation_id::text, m.sender_id::text, u.username, u.avatar_url,
		       m.body, m.msg_type, m.attachment_url, m.status, m.created_at
		FROM chat.message m
		JOIN chat.app_user u ON u.id = m.sender_id
		WHERE m.conversation_id = $1::uuid
		ORDER BY m.created_at ASC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		var msgType, status string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender.ID, &m.Sender.Username, &m.Sender.AvatarURL,
			&m.Body, &msgType, &m.AttachmentURL, &status, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.MsgType = chat.MessageType(msgType)
		m.Status = chat.MessageStatus(status)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) ApplySendCounters(ctx context.Context, conversationID, senderID, messageID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// In-place per-row update: the increment happens inside the statement,
	// not in application memory, so overlapping sends serialize at the row.
	_, err = tx.Exec(ctx, `
		UPDATE chat.participant
		SET unread_count = CASE WHEN user_id = $2::uuid THEN 0 ELSE unread_count + 1 END
		WHERE conversation_id = $1::uuid
	`, conversationID, senderID)
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message_id = $2::uuid, updated_at = now()
		WHERE id = $1::uuid
	`, conversationID, messageID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *PgChatRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.participant
		SET unread_count = 0
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *PgChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	// The reader's own messages are never touched; already-read messages
	// stay read (monotonic).
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.message
		SET status = 'read'
		WHERE conversation_id = $1::uuid
		  AND sender_id <> $2::uuid
		  AND status IN ('sent', 'delivered')
	`, conversationID, readerID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgChatRepository) MarkMessageDelivered(ctx context.Context, messageID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE chat.message
		SET status = 'delivered'
		WHERE id = $1::uuid AND status = 'sent'
	`, messageID)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
