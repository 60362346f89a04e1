// Package stream maintains the persistent push connection to the INTALKS
// backend and dispatches incoming frames to registered handlers. The
// connection is never allowed to die quietly: every unplanned close
// schedules a reconnect with capped exponential backoff.
package stream

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// State describes the connection lifecycle.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
	// StateDown is reported after giveUpThreshold consecutive failures.
	// Retries continue at the backoff cap; the UI surfaces the outage.
	StateDown
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateDown:
		return "down"
	default:
		return "unknown"
	}
}

// Event is one inbound push frame. The backend sends flat JSON objects
// discriminated by the event field; unused fields stay zero.
type Event struct {
	Name          string  `json:"event"`
	CustomerID    string  `json:"customer_id,omitempty"`
	Status        string  `json:"status,omitempty"`
	Message       string  `json:"message,omitempty"`
	UploadID      string  `json:"upload_id,omitempty"`
	Filename      string  `json:"filename,omitempty"`
	Progress      float64 `json:"progress,omitempty"`
	Processed     int     `json:"processed,omitempty"`
	Total         int     `json:"total,omitempty"`
	Operation     string  `json:"operation,omitempty"`
	Timestamp     string  `json:"timestamp,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerPhone string  `json:"customer_phone,omitempty"`
}

// Push event discriminators.
const (
	EventCallStatusUpdate    = "call_status_update"
	EventUploadProgress      = "upload_progress"
	EventUploadComplete      = "upload_complete"
	EventBulkOperationUpdate = "bulk_operation_update"
	EventDataUpdate          = "data_update"
)

// Handler consumes one dispatched event. Handlers must not block: dispatch
// is synchronous per frame and long work stalls the read loop.
type Handler func(Event)

const (
	baseReconnectDelay = 3 * time.Second
	maxReconnectDelay  = 30 * time.Second
	jitterFraction     = 0.2
	giveUpThreshold    = 10
)

// Client owns one push connection per dashboard session.
type Client struct {
	url       string
	sessionID string
	handlers  map[string]Handler
	onState   func(State, error)
	log       *slog.Logger

	// dial is swapped in tests.
	dial func(ctx context.Context) (*websocket.Conn, error)
}

// Options configure a stream client.
type Options struct {
	// URL is the websocket endpoint, e.g. ws://127.0.0.1:8000/socket.
	URL string
	// OnStateChange is invoked on every connection state transition. The
	// error is non-nil for failure-driven transitions. May be nil.
	OnStateChange func(State, error)
	Logger        *slog.Logger
}

// New builds a stream client. Each client carries a fresh session id.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		url:       opts.URL,
		sessionID: uuid.NewString(),
		handlers:  make(map[string]Handler),
		onState:   opts.OnStateChange,
		log:       logger,
	}
	c.dial = c.dialWebsocket
	return c
}

// On registers the handler for one event discriminator. Must be called
// before Run.
func (c *Client) On(name string, h Handler) {
	c.handlers[name] = h
}

// SessionID returns the id sent with the connection handshake.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Run connects and keeps reconnecting until the context is cancelled.
// It blocks; callers run it in its own goroutine.
func (c *Client) Run(ctx context.Context) {
	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}

		c.setState(StateConnecting, nil)
		conn, err := c.dial(ctx)
		if err != nil {
			failures++
			c.log.Warn("stream connect failed", "attempt", failures, "error", err)
			if failures == giveUpThreshold {
				c.setState(StateDown, err)
			} else if failures < giveUpThreshold {
				c.setState(StateClosed, err)
			}
			if !c.sleep(ctx, withJitter(reconnectDelay(failures))) {
				return
			}
			continue
		}

		failures = 0
		c.setState(StateOpen, nil)
		err = c.readLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		c.log.Info("stream disconnected", "error", err)
		c.setState(StateClosed, err)
		failures = 1
		if !c.sleep(ctx, withJitter(reconnectDelay(failures))) {
			return
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadJSON when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev Event) {
	h, ok := c.handlers[ev.Name]
	if !ok {
		c.log.Debug("dropping frame with unknown event", "event", ev.Name)
		return
	}
	h(ev)
}

func (c *Client) dialWebsocket(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	header.Set("X-Session-ID", c.sessionID)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

func (c *Client) setState(s State, err error) {
	if c.onState != nil {
		c.onState(s, err)
	}
}

func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// reconnectDelay doubles from the base delay per consecutive failure,
// capped at maxReconnectDelay.
func reconnectDelay(failures int) time.Duration {
	if failures <= 1 {
		return baseReconnectDelay
	}
	delay := baseReconnectDelay
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= maxReconnectDelay {
			return maxReconnectDelay
		}
	}
	return delay
}

// withJitter spreads reconnect attempts by ±20% so a backend restart does
// not see every dashboard dial back in lockstep.
func withJitter(d time.Duration) time.Duration {
	spread := float64(d) * jitterFraction
	offset := (rand.Float64()*2 - 1) * spread
	return time.Duration(float64(d) + offset)
}
