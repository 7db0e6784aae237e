package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		_, err = hub.Register(conn)
		require.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubLifecycleHooks(t *testing.T) {
	var firsts, lasts atomic.Int32
	hub := NewHub(func() { firsts.Add(1) }, func() { lasts.Add(1) })
	defer hub.Stop()

	a := dialTestHub(t, hub)
	b := dialTestHub(t, hub)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), firsts.Load(), "first-connect fires once for the first viewer only")
	assert.Equal(t, int32(0), lasts.Load())

	_ = a
	_ = b
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(nil, nil)
	defer hub.Stop()

	a := dialTestHub(t, hub)
	b := dialTestHub(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte(`{"type":"currentSlide"}`))

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"currentSlide"}`, string(msg))
	}
}

func TestHubUnregisterFiresLastDisconnect(t *testing.T) {
	var lasts atomic.Int32
	hub := NewHub(nil, func() { lasts.Add(1) })
	defer hub.Stop()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	registered := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		id, err := hub.Register(conn)
		require.NoError(t, err)
		registered <- struct{}{}
		// mimic the live handler: unregister when the read loop ends
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.Unregister(id)
					return
				}
			}
		}()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	<-registered

	conn.Close()
	assert.Eventually(t, func() bool { return lasts.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.ClientCount())
}
