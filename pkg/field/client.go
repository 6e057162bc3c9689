package field

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Envelope is the wire frame a field server broadcasts. Only coherence_update
// frames carry samples; anything else is logged and skipped.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second
)

// Client maintains a websocket subscription to a field server, reconnecting
// with exponential backoff for as long as the context lives. Valid samples
// are pushed to OnSample from the read goroutine; the renderer only ever
// consumes the latest one.
type Client struct {
	URL      string
	OnSample func(Sample)

	dialer *websocket.Dialer
}

func NewClient(url string, onSample func(Sample)) *Client {
	return &Client{URL: url, OnSample: onSample, dialer: websocket.DefaultDialer}
}

// Run blocks until ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Connecting to field server: %s", c.URL)
		conn, _, err := c.dialer.DialContext(ctx, c.URL, nil)
		if err != nil {
			log.Printf("Dial error: %v. Retrying in %v...", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff

		// Unblock the read loop when the context dies.
		stop := context.AfterFunc(ctx, func() { conn.Close() })
		c.readLoop(conn)
		stop()
		conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.Printf("Read error: %v. Reconnecting...", err)
			return
		}
		c.handle(env)
	}
}

func (c *Client) handle(env Envelope) {
	switch env.Type {
	case "coherence_update":
		var s Sample
		if err := json.Unmarshal(env.Data, &s); err != nil {
			log.Printf("Malformed sample: %v", err)
			return
		}
		if !s.Valid() {
			log.Printf("Dropping out-of-domain sample: %+v", s)
			return
		}
		if c.OnSample != nil {
			c.OnSample(s)
		}
	case "field_error":
		log.Printf("[FIELD ERROR] %s", string(env.Data))
	}
}
