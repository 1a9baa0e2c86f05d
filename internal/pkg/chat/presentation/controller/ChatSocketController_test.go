package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/cache/port"
	qport "github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/queue/port"
	"github.com/igwed93/reverb-chat-app-backend/internal/infrastructure/realtime"
	"github.com/igwed93/reverb-chat-app-backend/internal/pkg/auth"
	user "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/domain"
	userTask "github.com/igwed93/reverb-chat-app-backend/internal/pkg/user/application/task"
)

// stubAuthenticator resolves any non-empty token as the user id.
type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, errors.New("no token")
	}
	return &auth.Identity{ID: token, Username: token}, nil
}

// stubCache always misses.
type stubCache struct{}

func (stubCache) Get(context.Context, string) (string, error)                  { return "", cacheport.ErrMiss }
func (stubCache) Set(context.Context, string, string, time.Duration) error    { return nil }
func (stubCache) Del(context.Context, ...string) (int64, error)               { return 0, nil }
func (stubCache) Ping(context.Context) error                                  { return nil }
func (stubCache) Close() error                                                { return nil }

// recordingQueue captures enqueued tasks instead of dispatching them.
type recordingQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
}

func (q *recordingQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
	return fmt.Sprintf("task-%d", len(q.tasks)), nil
}

func (q *recordingQueue) Close() error { return nil }

func (q *recordingQueue) presenceStatuses() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var statuses []string
	for _, task := range q.tasks {
		if task.Type != userTask.SetPresenceTaskType {
			continue
		}
		var p userTask.SetPresenceTaskPayload
		if err := json.Unmarshal(task.Payload, &p); err != nil {
			statuses = append(statuses, "malformed payload")
			continue
		}
		statuses = append(statuses, p.Status)
	}
	return statuses
}

func newSocketTestServer(t *testing.T) (*realtime.Router, *recordingQueue, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := realtime.NewRouter()
	t.Cleanup(router.Close)
	queue := &recordingQueue{}
	ctl := NewChatSocketController(nil, router, stubCache{}, queue)

	r := gin.New()
	r.GET("/ws", auth.RequireAuth(stubAuthenticator{}), ctl.Handle())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return router, queue, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialSocket(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// readFrameTypes reads frames until count frames of the wanted type arrived.
func readFrameTypes(t *testing.T, ws *websocket.Conn, wanted string, count int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	seen := 0
	for seen < count {
		require.NoError(t, ws.SetReadDeadline(deadline))
		_, data, err := ws.ReadMessage()
		require.NoError(t, err, "waiting for %q frame %d of %d", wanted, seen+1, count)
		var frame struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(data, &frame))
		if frame.Type == wanted {
			seen++
		}
	}
}

func TestChatSocketReconnectKeepsDurablePresenceOnline(t *testing.T) {
	router, queue, url := newSocketTestServer(t)

	first := dialSocket(t, url+"?token=alice")
	readFrameTypes(t, first, EventConnected, 1)

	require.Eventually(t, func() bool {
		return len(queue.presenceStatuses()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	second := dialSocket(t, url+"?token=alice")

	// the replaced socket is closed with the takeover code
	_ = first.SetReadDeadline(time.Now().Add(3 * time.Second))
	var closeErr *websocket.CloseError
	for {
		_, _, err := first.ReadMessage()
		if err != nil {
			require.ErrorAs(t, err, &closeErr)
			assert.Equal(t, 4001, closeErr.Code)
			break
		}
	}

	// the replaced handler's cleanup has finished once its online-list push
	// reaches the new socket (one list push from the new attach, one from
	// the old session's teardown)
	readFrameTypes(t, second, EventOnlineUsers, 2)

	// give the teardown path time to finish past the list push before
	// inspecting what it queued
	time.Sleep(150 * time.Millisecond)

	assert.True(t, router.IsOnline("alice"))
	assert.Equal(t, []string{string(user.StatusOnline), string(user.StatusOnline)},
		queue.presenceStatuses(), "replaced session must not persist Offline while a live socket remains")

	// only the real disconnect persists Offline
	require.NoError(t, second.Close())
	require.Eventually(t, func() bool {
		statuses := queue.presenceStatuses()
		return len(statuses) == 3 && statuses[2] == string(user.StatusOffline)
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, router.IsOnline("alice"))
}

func TestChatSocketDisconnectPersistsOffline(t *testing.T) {
	router, queue, url := newSocketTestServer(t)

	ws := dialSocket(t, url+"?token=bob")
	readFrameTypes(t, ws, EventConnected, 1)
	require.NoError(t, ws.Close())

	require.Eventually(t, func() bool {
		statuses := queue.presenceStatuses()
		return len(statuses) == 2 &&
			statuses[0] == string(user.StatusOnline) &&
			statuses[1] == string(user.StatusOffline)
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, router.IsOnline("bob"))
}
