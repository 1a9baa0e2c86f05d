package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/adapter"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/persistence/repository/port"
)

// SetPresenceTaskType is the queue task name for persisting presence changes
// observed on the socket layer.
const SetPresenceTaskType = "user:set_presence"

// SetPresenceTaskPayload carries the presence transition to persist.
type SetPresenceTaskPayload struct {
	UserID   string    `json:"userId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

// EnqueueSetPresence schedules a presence write. Socket connect and
// disconnect paths must not block on the database, so the write goes through
// the queue. UniqueTTL collapses rapid reconnect churn for the same user.
func EnqueueSetPresence(ctx context.Context, client qport.Client, userID string, status user.Status) error {
	b, err := json.Marshal(SetPresenceTaskPayload{
		UserID:   userID,
		Status:   string(status),
		LastSeen: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(ctx, qport.Task{Type: SetPresenceTaskType, Payload: b},
		qport.EnqueueOption{Queue: "default", MaxRetry: 3, UniqueTTL: 5 * time.Second})
	return err
}

// RegisterSetPresenceTask binds the presence writer to the queue server. An
// unknown user id is treated as done rather than retried; the account may
// have been removed between enqueue and processing.
func RegisterSetPresenceTask(srv qport.Server, pool *pgxpool.Pool) {
	repo := repoAdapter.NewPgUserRepository(pool)
	srv.Register(SetPresenceTaskType, func(ctx context.Context, t qport.Task) error {
		var p SetPresenceTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		err := repo.UpdatePresence(ctx, p.UserID, user.Status(p.Status), p.LastSeen)
		if errors.Is(err, repository.ErrNoRows) {
			return nil
		}
		return err
	})
}
