package farmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsHandshakeTimeout = 10 * time.Second
	wsPingInterval     = 30 * time.Second
	wsWriteTimeout     = 5 * time.Second
	wsReadLimit        = 1 << 20

	streamInitialDelay = time.Second
	streamMaxDelay     = 30 * time.Second
)

// Stream subscribes to the websocket status feed of one printer and hands
// each decoded snapshot to a callback. The callback runs on the stream's
// goroutine and must not block.
//
// The stream reconnects with capped exponential backoff until the context
// ends. Polling stays on as the fallback transport, so a feed that cannot
// connect degrades to log lines rather than taking the panel down.
type Stream struct {
	client    *Client
	printerID string
	onStatus  func(*PrinterStatus)

	dialer *websocket.Dialer
}

// NewStream prepares a status subscription for one printer.
func NewStream(client *Client, printerID string, onStatus func(*PrinterStatus)) *Stream {
	return &Stream{
		client:    client,
		printerID: printerID,
		onStatus:  onStatus,
		dialer: &websocket.Dialer{
			HandshakeTimeout: wsHandshakeTimeout,
		},
	}
}

// StreamURL returns the websocket endpoint for a printer's status feed,
// derived from the client's base URL by the usual scheme swap.
func (c *Client) StreamURL(printerID string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	u := *c.baseURL
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = printerPath(printerID, "ws")
	return u.String(), nil
}

// Run connects and keeps the subscription alive until the context is
// cancelled. It blocks; callers start it on its own goroutine.
func (s *Stream) Run(ctx context.Context) {
	delay := streamInitialDelay
	for {
		start := time.Now()
		err := s.readOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		if time.Since(start) > streamMaxDelay {
			// The connection held for a while; start backing off fresh.
			delay = streamInitialDelay
		}
		if err != nil {
			log.Printf("status stream %s: %v (reconnect in %s)", s.printerID, err, delay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > streamMaxDelay {
			delay = streamMaxDelay
		}
	}
}

// readOnce dials the feed and consumes frames until the connection drops
// or the context ends.
func (s *Stream) readOnce(ctx context.Context) error {
	wsURL, err := s.client.StreamURL(s.printerID)
	if err != nil {
		return err
	}

	conn, _, err := s.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(wsReadLimit)

	// ReadJSON only unblocks on connection close, so close the socket when
	// the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	go pingLoop(conn, done)

	for {
		var status PrinterStatus
		if err := conn.ReadJSON(&status); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read status frame: %w", err)
		}
		s.onStatus(&status)
	}
}

// pingLoop keeps the connection alive through idle proxies.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
