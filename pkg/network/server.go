// pkg/network/server.go
package network

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rhighs/quadtree-demo/pkg/engine"
	"github.com/rhighs/quadtree-demo/pkg/event"
	"github.com/rhighs/quadtree-demo/pkg/logging"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	sendBufSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectators are read-only; any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SpectatorServer broadcasts simulation frames to websocket clients.
// Spectators never influence the simulation: incoming messages are
// read only to service pings and detect disconnects.
type SpectatorServer struct {
	game   *engine.Game
	logger *logging.Logger

	server     *http.Server
	updateRate time.Duration
	maxClients int

	spectators map[*spectator]bool
	register   chan *spectator
	unregister chan *spectator

	running bool
	done    chan struct{}
	mu      sync.Mutex
}

// spectator is one connected websocket client.
type spectator struct {
	conn *websocket.Conn
	send chan []byte
}

// NewSpectatorServer creates a server around an existing simulation.
func NewSpectatorServer(game *engine.Game) *SpectatorServer {
	nc := game.Config.Network
	return &SpectatorServer{
		game:       game,
		logger:     logging.NewLogger(),
		updateRate: time.Second / time.Duration(nc.UpdateRate),
		maxClients: nc.MaxSpectators,
		spectators: make(map[*spectator]bool),
		register:   make(chan *spectator),
		unregister: make(chan *spectator),
		done:       make(chan struct{}),
	}
}

// Start begins listening on the given address. Non-blocking.
func (s *SpectatorServer) Start(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	s.server = &http.Server{
		Addr:    address,
		Handler: s.routes(),
	}
	s.running = true

	go s.hubLoop()
	go s.broadcastLoop()
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error(context.Background(), "spectator server failed", err,
				"address", address,
			)
		}
	}()

	s.logger.Info(context.Background(), "spectator server started",
		"address", address,
		"max_spectators", s.maxClients,
	)
	return nil
}

// Stop disconnects all spectators and shuts the listener down.
func (s *SpectatorServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}

// SpectatorCount returns the number of connected spectators.
func (s *SpectatorServer) SpectatorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spectators)
}

// routes builds the HTTP mux. Split out so tests can mount it on a
// test server.
func (s *SpectatorServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

func (s *SpectatorServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if s.SpectatorCount() >= s.maxClients {
		http.Error(w, "too many spectators", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(r.Context(), "websocket upgrade failed", err)
		return
	}

	client := &spectator{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
	s.register <- client

	go client.writePump()
	go s.readPump(client)
}

// hubLoop owns the spectator set.
func (s *SpectatorServer) hubLoop() {
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.spectators[client] = true
			count := len(s.spectators)
			s.mu.Unlock()
			s.game.EventBus.Publish(&event.BaseEvent{EventType: event.SpectatorJoined, Source: s})
			s.logger.Info(context.Background(), "spectator joined", "spectators", count)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.spectators[client]; ok {
				delete(s.spectators, client)
				close(client.send)
			}
			count := len(s.spectators)
			s.mu.Unlock()
			s.game.EventBus.Publish(&event.BaseEvent{EventType: event.SpectatorLeft, Source: s})
			s.logger.Info(context.Background(), "spectator left", "spectators", count)

		case <-s.done:
			s.mu.Lock()
			for client := range s.spectators {
				close(client.send)
				delete(s.spectators, client)
			}
			s.mu.Unlock()
			return
		}
	}
}

// broadcastLoop encodes a frame once per update period and fans it
// out. Spectators that cannot keep up are dropped.
func (s *SpectatorServer) broadcastLoop() {
	ticker := time.NewTicker(s.updateRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.broadcastFrame()
		case <-s.done:
			return
		}
	}
}

func (s *SpectatorServer) broadcastFrame() {
	s.mu.Lock()
	if len(s.spectators) == 0 {
		s.mu.Unlock()
		return
	}
	clients := make([]*spectator, 0, len(s.spectators))
	for client := range s.spectators {
		clients = append(clients, client)
	}
	s.mu.Unlock()

	frame := FrameFromState(s.game.GetGameState())
	data, err := msgpack.Marshal(frame)
	if err != nil {
		s.logger.Error(context.Background(), "failed to encode frame", err)
		return
	}

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer; closing the socket makes its pumps exit.
			client.conn.Close()
		}
	}
}

// readPump drains the connection to keep pong handling alive and to
// notice disconnects.
func (s *SpectatorServer) readPump(client *spectator) {
	defer func() {
		select {
		case s.unregister <- client:
		case <-s.done:
		}
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pushes frames and pings to the spectator.
func (c *spectator) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
