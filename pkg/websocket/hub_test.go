package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, 1, "nurse")
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, url := startHubServer(t)

	first := dial(t, url)
	defer first.Close()
	second := dial(t, url)
	defer second.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast("orders:updated", map[string]interface{}{"type": "created", "orderId": 42}))

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope struct {
			Event   string                 `json:"event"`
			EventID string                 `json:"eventId"`
			Payload map[string]interface{} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "orders:updated", envelope.Event)
		assert.NotEmpty(t, envelope.EventID)
		assert.Equal(t, "created", envelope.Payload["type"])
		assert.EqualValues(t, 42, envelope.Payload["orderId"])
	}
}

func TestHub_ClientRemovedAfterDisconnect(t *testing.T) {
	hub, url := startHubServer(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub, _ := startHubServer(t)
	assert.NoError(t, hub.Broadcast("orders:updated", map[string]string{"type": "menu_reloaded"}))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_DoneClosedAfterRunStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	select {
	case <-hub.Done():
		t.Fatal("Done закрыт до остановки хаба")
	default:
	}

	cancel()
	<-stopped
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("Done не закрыт после остановки хаба")
	}
}
