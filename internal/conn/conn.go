package conn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/pcanos/charla/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var (
	ErrClosed       = errors.New("connection closed")
	ErrUnauthorized = errors.New("authentication rejected")
)

type ack struct {
	payload json.RawMessage
	err     error
}

// Client owns the single live websocket connection. Requests are correlated
// to acks by id; everything the server pushes unprompted comes out of
// Events. No other component writes to the connection directly.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	events chan model.Envelope
	done   chan struct{}

	mu      sync.Mutex
	pending map[uint64]chan ack
	nextID  atomic.Uint64

	closeOnce sync.Once
}

// Dial establishes the authenticated connection. The http(s) server URL is
// rewritten to the ws(s) endpoint; the session token rides in the
// Authorization header.
func Dial(ctx context.Context, serverURL, token string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("dial: unsupported scheme %q", u.Scheme)
	}
	// Keep any base path from the configured origin (reverse proxies).
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+token)

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), hdr)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			log.Error().Int("status", resp.StatusCode).Msg("connect rejected")
			return nil, fmt.Errorf("dial: %w", ErrUnauthorized)
		}
		log.Error().Err(err).Str("url", u.String()).Msg("connect failed")
		return nil, fmt.Errorf("dial: %w", err)
	}
	log.Info().Str("url", u.String()).Msg("connected")

	c := &Client{
		conn:    ws,
		send:    make(chan []byte, 256),
		events:  make(chan model.Envelope, 64),
		done:    make(chan struct{}),
		pending: make(map[uint64]chan ack),
	}
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

// Events delivers server-pushed envelopes. The channel is closed when the
// connection dies.
func (c *Client) Events() <-chan model.Envelope {
	return c.events
}

// Done is closed on teardown, however it happened.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close tears the connection down. Safe to call any number of times, on any
// goroutine, including on an already-dead connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		c.mu.Lock()
		for id, ch := range c.pending {
			ch <- ack{err: ErrClosed}
			delete(c.pending, id)
		}
		c.mu.Unlock()
	})
}

func (c *Client) readLoop() {
	defer func() {
		c.Close()
		close(c.events)
	}()
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				log.Error().Err(err).Msg("read failed")
			}
			return
		}
		var env model.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}
		if env.Type == model.EventAck {
			c.resolve(env)
			continue
		}
		select {
		case c.events <- env:
		case <-c.done:
			return
		}
	}
}

func (c *Client) resolve(env model.Envelope) {
	c.mu.Lock()
	ch, ok := c.pending[env.ID]
	if ok {
		delete(c.pending, env.ID)
	}
	c.mu.Unlock()
	if !ok {
		// Response for a request nobody is waiting on anymore.
		log.Debug().Uint64("id", env.ID).Msg("dropping orphan ack")
		return
	}
	if env.Error != "" {
		ch <- ack{err: errors.New(env.Error)}
		return
	}
	ch <- ack{payload: env.Payload}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) enqueue(env model.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// Request issues an op and blocks until its ack, the context's end, or
// teardown. Concurrent outstanding requests are multiplexed by id.
func (c *Client) Request(ctx context.Context, op model.EventType, payload any) (json.RawMessage, error) {
	env := model.Envelope{Type: op, ID: c.nextID.Add(1)}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		env.Payload = raw
	}

	ch := make(chan ack, 1)
	c.mu.Lock()
	c.pending[env.ID] = ch
	c.mu.Unlock()

	if err := c.enqueue(env); err != nil {
		c.mu.Lock()
		delete(c.pending, env.ID)
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	select {
	case a := <-ch:
		if a.err != nil {
			return nil, fmt.Errorf("%s: %w", op, a.err)
		}
		return a.payload, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, env.ID)
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// Notify issues a fire-and-forget op; the result, if any, arrives through
// the inbound event path.
func (c *Client) Notify(op model.EventType, payload any) error {
	env := model.Envelope{Type: op}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		env.Payload = raw
	}
	if err := c.enqueue(env); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
