package events

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	NewHandler(hub).RegisterRoutes(r.Group("/"))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The hub registers before the upgrade handler returns, but give the
	// client registration a moment under race detectors.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	return hub, conn
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub, conn := dialTestHub(t)

	hub.Publish("media.uploaded", map[string]any{"id": "m-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "media.uploaded", event.Type)
	assert.False(t, event.At.IsZero())
}

// Concurrent request handlers publish without coordination; writes to one
// connection must serialize or gorilla panics on the shared frame writer.
func TestHub_ConcurrentPublishes(t *testing.T) {
	hub, conn := dialTestHub(t)

	const publishers = 8
	const perPublisher = 25

	received := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for received < publishers*perPublisher {
			var event Event
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			received++
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				hub.Publish("media.uploaded", map[string]any{"n": j})
			}
		}()
	}
	wg.Wait()

	<-done
	assert.Equal(t, publishers*perPublisher, received)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_DroppedClientIsUnregistered(t *testing.T) {
	hub, conn := dialTestHub(t)

	conn.Close()

	// The first write after the close fails and evicts the connection.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() > 0 && time.Now().Before(deadline) {
		hub.Publish("media.liked", nil)
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, 0, hub.ClientCount())
}
