package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firewatch/internal/logger"

	"github.com/gorilla/websocket"
)

func TestHubService_BroadcastReachesViewer(t *testing.T) {
	hub := NewHubService(logger.Nop())
	go hub.Run()
	defer hub.Stop()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		hub.Register(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Viewer was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast([]byte(`{"frame":1}`))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if string(msg) != `{"frame":1}` {
		t.Errorf("Unexpected message %s", msg)
	}
}

func TestHubService_BroadcastNeverBlocks(t *testing.T) {
	hub := NewHubService(logger.Nop())

	// Run is not started: the buffer fills and further frames are dropped.
	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*3; i++ {
			hub.Broadcast([]byte("frame"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked without a running hub")
	}
}

func TestHubService_DropWarningsAreRateLimited(t *testing.T) {
	hub := NewHubService(logger.Nop())
	clock := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	hub.now = func() time.Time { return clock }

	for i := 0; i < broadcastBuffer; i++ {
		hub.Broadcast([]byte("frame"))
	}
	if hub.dropped != 0 {
		t.Fatalf("Expected no drops while the buffer has room, got %d", hub.dropped)
	}

	// The first drop warns immediately; the rest are counted until the interval passes.
	for i := 0; i < 20; i++ {
		hub.Broadcast([]byte("frame"))
	}
	if hub.dropped != 19 || !hub.lastDropWarn.Equal(clock) {
		t.Errorf("Expected 19 pending drops after one warning, got %d (last warn %v)", hub.dropped, hub.lastDropWarn)
	}

	clock = clock.Add(dropWarnInterval)
	hub.Broadcast([]byte("frame"))
	if hub.dropped != 0 || !hub.lastDropWarn.Equal(clock) {
		t.Errorf("Expected a new warning after the interval, got %d pending (last warn %v)", hub.dropped, hub.lastDropWarn)
	}
}
