package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
)

// MarkDeliveredTaskType is the queue task name for the delivered-status sweep.
const MarkDeliveredTaskType = "chat:mark_delivered"

// MarkDeliveredTaskPayload identifies the message that reached at least one
// live recipient socket.
type MarkDeliveredTaskPayload struct {
	MessageID string `json:"messageId"`
}

// EnqueueMarkDelivered schedules the sweep for a message. Failure to enqueue
// is not fatal to the caller; the message stays at sent until a read action
// advances it.
func EnqueueMarkDelivered(ctx context.Context, client qport.Client, messageID string) error {
	b, err := json.Marshal(MarkDeliveredTaskPayload{MessageID: messageID})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(ctx, qport.Task{Type: MarkDeliveredTaskType, Payload: b},
		qport.EnqueueOption{Queue: "chat", MaxRetry: 5, UniqueTTL: time.Minute})
	return err
}

// RegisterMarkDeliveredTask binds the sweep handler to the queue server.
// The status update is monotonic at the SQL level, so re-delivery of the
// task is harmless.
func RegisterMarkDeliveredTask(srv qport.Server, pool *pgxpool.Pool) {
	repo := repoAdapter.NewPgChatRepository(pool)
	srv.Register(MarkDeliveredTaskType, func(ctx context.Context, t qport.Task) error {
		var p MarkDeliveredTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return repo.MarkMessageDelivered(ctx, p.MessageID)
	})
}
