package ptfs

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yegors/atc24-radar/pkg/logger"
)

const (
	handshakeTimeout  = 15 * time.Second
	keepAliveInterval = 30 * time.Second
	pingWriteTimeout  = 10 * time.Second
)

// StreamClient maintains the long-lived websocket connection to the data
// feed. It reconnects after a fixed, configurable delay for the life of the
// process; there is no backoff growth and no retry limit.
type StreamClient struct {
	store  Store
	router *Router
	dialer *websocket.Dialer
	logger *logger.Logger
}

// NewStreamClient creates a streaming client that feeds the given router
func NewStreamClient(store Store, router *Router, log *logger.Logger) *StreamClient {
	return &StreamClient{
		store:  store,
		router: router,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		logger: log.Named("stream"),
	}
}

// Run manages the connection until the context is cancelled. The websocket
// URL and reconnect delay are re-read from the live config snapshot on every
// cycle, so a hot-reload takes effect at the next reconnect.
func (c *StreamClient) Run(ctx context.Context) error {
	for {
		network := c.store.Config().Network

		c.logger.Info("Connecting to stream", logger.String("url", network.WebsocketURL))

		if err := c.connect(ctx, network.WebsocketURL); err != nil {
			c.logger.Error("Stream connection ended", logger.Error(err))
		} else {
			c.logger.Info("Stream connection closed normally")
		}
		c.store.SetStreamConnected(false)

		delay := time.Duration(network.ReconnectDelaySecs) * time.Second
		c.logger.Info("Reconnecting", logger.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// connect dials the stream and pumps frames until the connection drops.
// A nil return means the server closed the connection cleanly.
func (c *StreamClient) connect(ctx context.Context, url string) error {
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.store.SetStreamConnected(true)
	c.logger.Info("Stream connected")

	done := make(chan struct{})
	defer close(done)
	go c.keepAlive(conn, done)

	// The read loop below blocks in ReadMessage; tear the connection down on
	// cancellation so it unblocks and the caller can exit.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		messageType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		if messageType != websocket.TextMessage {
			continue
		}

		if err := c.router.HandleFrame(frame); err != nil {
			// Recoverable: the frame is dropped, the stream stays up.
			c.logger.Error("Error handling message", logger.Error(err))
		}
	}
}

// keepAlive sends a liveness ping every 30s while the connection is marked
// connected. It stops when the read loop finishes, the connection flag
// drops, or a ping write fails; a failed write also tears the connection
// down so the read loop unblocks.
func (c *StreamClient) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !c.store.StreamConnected() {
				return
			}
			deadline := time.Now().Add(pingWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Error("Failed to send ping", logger.Error(err))
				conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}
