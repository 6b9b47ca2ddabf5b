// pkg/network/client.go
package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rhighs/quadtree-demo/pkg/config"
	"github.com/rhighs/quadtree-demo/pkg/logging"
)

// SpectatorClient watches a remote simulation over websocket. Frames
// arrive on a buffered channel; when the consumer lags, older frames
// are dropped so the view stays current.
type SpectatorClient struct {
	url     string
	service *NetworkService
	logger  *logging.Logger

	conn   *websocket.Conn
	frames chan *Frame

	connected bool
	mu        sync.Mutex
}

// NewSpectatorClient creates a client for the given websocket URL,
// e.g. "ws://localhost:4580/ws".
func NewSpectatorClient(url string, envConfig *config.EnvironmentConfig) *SpectatorClient {
	return &SpectatorClient{
		url:     url,
		service: NewNetworkService(envConfig),
		logger:  logging.NewLogger(),
		frames:  make(chan *Frame, 4),
	}
}

// Connect dials the server through the circuit breaker with retries,
// then starts the read loop.
func (c *SpectatorClient) Connect(ctx context.Context) error {
	err := c.service.ExecuteWithRetry(ctx, func() error {
		dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
		conn, _, err := dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return fmt.Errorf("failed to dial %s: %w", c.url, err)
		}
		c.mu.Lock()
		c.conn = conn
		c.connected = true
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	go c.readLoop()
	c.logger.Info(ctx, "connected to spectator feed", "url", c.url)
	return nil
}

// Frames returns the channel of decoded frames. The channel closes
// when the connection drops.
func (c *SpectatorClient) Frames() <-chan *Frame {
	return c.frames
}

// Connected reports whether the client has a live connection.
func (c *SpectatorClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close shuts the connection down.
func (c *SpectatorClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false
	return c.conn.Close()
}

func (c *SpectatorClient) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		close(c.frames)
	}()

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Error(context.Background(), "spectator feed read failed", err)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		var frame Frame
		if err := msgpack.Unmarshal(data, &frame); err != nil {
			c.logger.Error(context.Background(), "failed to decode frame", err)
			continue
		}

		select {
		case c.frames <- &frame:
		default:
			// Consumer is behind: replace the oldest queued frame.
			select {
			case <-c.frames:
			default:
			}
			select {
			case c.frames <- &frame:
			default:
			}
		}
	}
}
