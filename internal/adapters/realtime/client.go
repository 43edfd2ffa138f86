// Package realtime consumes the backend's WebSocket event stream.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/ports"
)

const EventNotification = "notification"

// Event is one decoded frame. Frames are either {"event": ..., "data": ...}
// objects or [event, data] arrays.
type Event struct {
	Name string
	Data json.RawMessage
}

type Handler func(Event)

type Config struct {
	URL          string
	PingInterval time.Duration
	// ReadTimeout bounds the wait for any frame or pong; zero means
	// three ping intervals.
	ReadTimeout time.Duration
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	Dialer      *websocket.Dialer
}

// Client keeps one WebSocket session alive and dispatches its events.
// Handlers run on the read goroutine and should not block.
type Client struct {
	cfg    Config
	tokens ports.TokenSource
	log    *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New(cfg Config, tokens ports.TokenSource) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
		return nil, fmt.Errorf("new realtime client: invalid url %q", cfg.URL)
	}

	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 25 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 3 * cfg.PingInterval
	}
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.MinBackoff {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.Dialer == nil {
		cfg.Dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	}

	return &Client{
		cfg:      cfg,
		tokens:   tokens,
		log:      zap.L().Named("realtime"),
		handlers: make(map[string][]Handler),
	}, nil
}

// On registers h for event name. "*" receives every event.
func (c *Client) On(name string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[name] = append(c.handlers[name], h)
}

// OnNotification decodes notification events; malformed payloads are logged
// and dropped.
func (c *Client) OnNotification(fn func(dto.NotificationDto)) {
	c.On(EventNotification, func(ev Event) {
		var n dto.NotificationDto
		if err := json.Unmarshal(ev.Data, &n); err != nil {
			c.log.Debug("bad notification payload", zap.Error(err))
			return
		}
		if err := n.Validate(); err != nil {
			c.log.Debug("invalid notification payload", zap.Error(err))
			return
		}
		fn(n)
	})
}

// Run connects and reconnects with exponential backoff until ctx is done.
// It returns nil on cancellation.
func (c *Client) Run(ctx context.Context) error {
	backoff := c.cfg.MinBackoff

	for {
		connected, err := c.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			backoff = c.cfg.MinBackoff
		}
		c.log.Warn("realtime connection lost", zap.Error(err), zap.Duration("retry_in", backoff))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		backoff *= 2
		if backoff > c.cfg.MaxBackoff {
			backoff = c.cfg.MaxBackoff
		}
	}
}

func (c *Client) dialURL(token string) string {
	if token == "" {
		return c.cfg.URL
	}
	u, _ := url.Parse(c.cfg.URL)
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// session runs one connection to completion. connected reports whether the
// handshake succeeded.
func (c *Client) session(ctx context.Context) (connected bool, err error) {
	var token string
	if c.tokens != nil {
		if token, err = c.tokens.Token(ctx); err != nil {
			return false, fmt.Errorf("read session token: %w", err)
		}
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := c.cfg.Dialer.DialContext(ctx, c.dialURL(token), header)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("websocket dial: %w (status %d)", err, resp.StatusCode)
		}
		return false, fmt.Errorf("websocket dial: %w", err)
	}
	c.log.Info("realtime connected", zap.String("url", c.cfg.URL))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	// Closing the conn is what unblocks ReadMessage on cancellation.
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer wg.Done()
		c.ping(conn, done)
	}()

	err = c.read(conn)
	close(done)
	wg.Wait()

	return true, err
}

func (c *Client) ping(conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(c.cfg.PingInterval)
	defer t.Stop()

	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				c.log.Debug("ping failed", zap.Error(err))
				return
			}
		}
	}
}

func (c *Client) read(conn *websocket.Conn) error {
	extend := func() error { return conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)) }
	if err := extend(); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return errors.New("closed by server")
			}
			return fmt.Errorf("read: %w", err)
		}
		_ = extend()

		ev, ok := ParseFrame(msg)
		if !ok {
			c.log.Debug("ignoring frame", zap.ByteString("frame", msg))
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev Event) {
	c.mu.RLock()
	hs := append(append([]Handler(nil), c.handlers[ev.Name]...), c.handlers["*"]...)
	c.mu.RUnlock()

	for _, h := range hs {
		h(ev)
	}
}

// ParseFrame decodes a text frame into an Event.
func ParseFrame(msg []byte) (Event, bool) {
	if !gjson.ValidBytes(msg) {
		return Event{}, false
	}

	res := gjson.ParseBytes(msg)
	switch {
	case res.IsArray():
		parts := res.Array()
		if len(parts) == 0 || parts[0].Type != gjson.String {
			return Event{}, false
		}
		ev := Event{Name: parts[0].String()}
		if len(parts) > 1 {
			ev.Data = json.RawMessage(parts[1].Raw)
		}
		return ev, true

	case res.IsObject():
		name := res.Get("event")
		if !name.Exists() {
			name = res.Get("type")
		}
		if name.Type != gjson.String || name.String() == "" {
			return Event{}, false
		}
		data := res.Get("data")
		if !data.Exists() {
			data = res.Get("payload")
		}
		ev := Event{Name: name.String()}
		if data.Exists() {
			ev.Data = json.RawMessage(data.Raw)
		}
		return ev, true
	}

	return Event{}, false
}
