package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionSendAfterClose(t *testing.T) {
	s := newTestSocket(t, "alice")
	s.conn.Start()

	s.conn.Close(websocket.CloseNormalClosure, "bye")

	for i := 0; i < 200; i++ {
		err := s.conn.Send([]byte("x"))
		require.ErrorIs(t, err, ErrConnectionClosed, "iteration %d", i)
	}
}

func TestConnectionConcurrentSendAndClose(t *testing.T) {
	// A replacement close racing router broadcasts must never panic; a Send
	// that loses the race returns an error or enqueues a payload the stopped
	// write loop ignores.
	for run := 0; run < 20; run++ {
		s := newTestSocket(t, "alice")
		s.conn.Start()

		var wg sync.WaitGroup
		start := make(chan struct{})
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				<-start
				for i := 0; i < 50; i++ {
					_ = s.conn.Send([]byte(fmt.Sprintf("payload %d-%d", g, i)))
				}
			}(g)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			time.Sleep(time.Duration(run%5) * 100 * time.Microsecond)
			s.conn.Close(4001, "session replaced")
		}()

		close(start)
		wg.Wait()

		assert.ErrorIs(t, s.conn.Send([]byte("after")), ErrConnectionClosed)
	}
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	s := newTestSocket(t, "alice")
	s.conn.Start()

	s.conn.Close(websocket.CloseNormalClosure, "bye")
	s.conn.Close(websocket.CloseGoingAway, "again")

	_, err := s.readText(t, 2*time.Second)
	require.Error(t, err)
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
}
