package websocket

import (
	"sync"
	"time"

	"firewatch/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	broadcastBuffer  = 4
	dropWarnInterval = 5 * time.Second
)

// HubService fans annotated frames out to connected live viewers.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger

	dropMu       sync.Mutex
	dropped      int // frames dropped since the last warning
	lastDropWarn time.Time
	now          func() time.Time
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Viewer connected. Total: %d", count)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			count := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Viewer disconnected. Total: %d", count)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Error("Error sending frame: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()

		case <-h.done:
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return
		}
	}
}

func (h *HubService) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for all viewers. When viewers lag behind the frame is dropped.
func (h *HubService) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.frameDropped()
	}
}

// frameDropped counts a dropped frame and warns at most once per dropWarnInterval.
func (h *HubService) frameDropped() {
	h.dropMu.Lock()
	defer h.dropMu.Unlock()

	h.dropped++
	now := h.now()
	if now.Sub(h.lastDropWarn) < dropWarnInterval {
		return
	}
	h.logger.Warning("Viewer queue full - dropped %d frame(s)", h.dropped)
	h.dropped = 0
	h.lastDropWarn = now
}

// Stop disconnects every viewer and ends Run.
func (h *HubService) Stop() {
	close(h.done)
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
