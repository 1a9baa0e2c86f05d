package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/cache/port"
	queueport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	repoAdapter "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/persistence/repository/port"
	chatTask "github.com/igwed93/reverb-chat-app-backend/internal/pkg/chat/application/task"
	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	userTask "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/task"
)

// ChatSocketController handles the websocket endpoint for realtime chat
// traffic: presence, typing indicators and message relay. The identity bound
// at upgrade time is authoritative for the whole session; frame payloads
// never switch it.
type ChatSocketController struct {
	router          *realtime.Router
	repo            repository.ChatRepository
	cache           cacheport.Cache
	queue           queueport.Client
	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, router *realtime.Router, cache cacheport.Cache, queue queueport.Client) *ChatSocketController {
	return &ChatSocketController{
		router:          router,
		repo:            repoAdapter.NewPgChatRepository(pool),
		cache:           cache,
		queue:           queue,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when deploying
		// behind a known frontend origin.
		return true
	},
}

const (
	defaultReadTimeout  = 60 * time.Second
	participantCacheTTL = 10 * time.Minute
)

// Handle upgrades the connection and processes frames until the client
// disconnects or a newer session for the same user replaces this one.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := auth.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(ident.ID, ws)
		ctl.router.Attach(conn)
		ctl.pushOnlineUsers()
		ctl.enqueuePresence(ident.ID, user.StatusOnline)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
			ctl.pushOnlineUsers()
			// A replaced session's cleanup runs after the newer socket went
			// online; only persist Offline when no session is left.
			if !ctl.router.IsOnline(ident.ID) {
				ctl.enqueuePresence(ident.ID, user.StatusOffline)
			}
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: EventConnected}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case EventSetup:
				ctl.handleSetup(conn, ident, frame)
			case EventJoinChat:
				ctl.handleJoinChat(c, conn, frame)
			case EventNewMessage:
				ctl.handleNewMessage(c, conn, ident.ID, frame)
			case EventTyping, EventStopTyping:
				ctl.handleTyping(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// handleSetup acknowledges the client's personal-room announcement. The
// identity was already bound at upgrade; a payload claiming a different user
// is rejected rather than honored.
func (ctl *ChatSocketController) handleSetup(conn *realtime.Connection, ident *auth.Identity, frame inboundFrame) {
	if frame.UserID != "" && frame.UserID != ident.ID {
		ctl.replyError(conn, "forbidden", "setup user does not match session identity")
		return
	}
	if payload, err := json.Marshal(ackFrame{Type: EventConnected}); err == nil {
		_ = conn.Send(payload)
	}
	ctl.pushOnlineUsers()
}

func (ctl *ChatSocketController) handleJoinChat(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	ok, err := ctl.repo.IsParticipant(ctx, frame.ChatID, conn.UserID)
	if err != nil {
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
		return
	}
	if !ok {
		ctl.replyError(conn, "forbidden", "user is not a participant in this chat")
		return
	}

	ctl.router.Join(frame.ChatID, conn)
	if payload, err := json.Marshal(ackFrame{Type: "joined", ChatID: frame.ChatID}); err == nil {
		_ = conn.Send(payload)
	}
}

// handleNewMessage relays an already-persisted message to the other
// participants' personal rooms. The sender is skipped; recipients that are
// offline are dropped and will catch up through the unread counter.
func (ctl *ChatSocketController) handleNewMessage(c *gin.Context, conn *realtime.Connection, senderID string, frame inboundFrame) {
	var ref messageRef
	if err := json.Unmarshal(frame.Message, &ref); err != nil || ref.ChatID == "" {
		ctl.replyError(conn, "bad_request", "message with chatId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	participants, err := ctl.participantIDs(ctx, ref.ChatID)
	if err != nil {
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
		return
	}

	payload, err := json.Marshal(relayFrame{
		Type:    EventMessageReceived,
		ChatID:  ref.ChatID,
		Message: frame.Message,
	})
	if err != nil {
		ctl.replyError(conn, "internal_error", "failed to encode message")
		return
	}

	delivered := 0
	for _, id := range participants {
		if id == senderID {
			continue
		}
		if ctl.router.NotifyUser(id, payload) {
			delivered++
		}
	}

	if delivered > 0 && ref.ID != "" {
		if err := chatTask.EnqueueMarkDelivered(ctx, ctl.queue, ref.ID); err != nil {
			slog.Warn("enqueue delivered sweep failed", "message_id", ref.ID, "err", err)
		}
	}
}

// handleTyping forwards typing indicators to everyone else in the chat room.
// Only sockets that joined the room receive them; nothing is persisted.
func (ctl *ChatSocketController) handleTyping(conn *realtime.Connection, frame inboundFrame) {
	if frame.ChatID == "" {
		ctl.replyError(conn, "bad_request", "chatId is required")
		return
	}
	payload, err := json.Marshal(relayFrame{Type: frame.Type, ChatID: frame.ChatID})
	if err != nil {
		return
	}
	ctl.router.Broadcast(frame.ChatID, payload, conn.UserID)
}

// participantIDs is a read-through lookup. Membership never changes after a
// conversation is created, so a TTL-only cache is safe.
func (ctl *ChatSocketController) participantIDs(ctx context.Context, chatID string) ([]string, error) {
	key := "chat:participants:" + chatID
	if raw, err := ctl.cache.Get(ctx, key); err == nil {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			return ids, nil
		}
	}

	ids, err := ctl.repo.ListParticipantIDs(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ids); err == nil {
		if err := ctl.cache.Set(ctx, key, string(b), participantCacheTTL); err != nil {
			slog.Debug("participant cache write failed", "chat_id", chatID, "err", err)
		}
	}
	return ids, nil
}

// pushOnlineUsers broadcasts the current online-user list to every session.
func (ctl *ChatSocketController) pushOnlineUsers() {
	payload, err := json.Marshal(onlineUsersFrame{Type: EventOnlineUsers, Users: ctl.router.OnlineUsers()})
	if err != nil {
		return
	}
	ctl.router.BroadcastAll(payload)
}

// enqueuePresence queues the durable presence write. Best-effort on the
// socket lifecycle path.
func (ctl *ChatSocketController) enqueuePresence(userID string, status user.Status) {
	ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
	defer cancel()
	if err := userTask.EnqueueSetPresence(ctx, ctl.queue, userID, status); err != nil {
		slog.Warn("enqueue presence update failed", "user_id", userID, "status", status, "err", err)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: EventError, Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
