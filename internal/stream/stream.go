// ABOUTME: Event-stream controller managing a single server-push connection
// ABOUTME: Handles SSE framing, resumption headers, and the connection state machine

package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/2389/iamessage-client/internal/transport"
)

// Stream errors
var (
	ErrEmptyToken   = errors.New("empty token")
	ErrDisconnected = errors.New("stream disconnected")
)

const (
	streamPath = "/eventrouter/v1/sse"

	// SSE frames can carry large payloads; size the scanner accordingly.
	maxFrameSize = 1 << 20
)

// State is the lifecycle state of a stream connection.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateClosed     State = "closed"
)

// Event is one inbound server-push frame. Data is forwarded verbatim:
// the controller delimits frames but never parses or validates payloads.
type Event struct {
	ID   string
	Type string
	Data string
}

// Options configures one CreateStream call. All callbacks are optional.
type Options struct {
	// LastEventID, when set, asks the server to replay events after
	// that cursor via the Last-Event-Id header.
	LastEventID string
	OnOpen      func()
	OnEvent     func(Event)
	// OnError receives connection-level failures. The stream is a
	// long-lived operation with no single call site to reject, so
	// errors arrive here instead of as return values.
	OnError func(error)
}

// Controller opens server-push connections. Each CreateStream call owns
// exactly one connection; streams are never multiplexed.
type Controller struct {
	baseURL    string
	orgID      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewController creates a stream controller. A nil httpClient falls back
// to http.DefaultClient; note the default client's timeout must remain
// zero or it will sever long-lived streams.
func NewController(baseURL, orgID string, httpClient *http.Client, logger *slog.Logger) *Controller {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		baseURL:    baseURL,
		orgID:      orgID,
		httpClient: httpClient,
		logger:     logger.With("component", "stream"),
	}
}

// CreateStream opens one push connection and dispatches inbound frames to
// opts.OnEvent until the connection ends. An empty token fails before any
// connection attempt. On transport disconnect the connection transitions
// to Closed and is closed by the controller itself — there is no
// automatic reconnect; callers resume with a new CreateStream call
// carrying the last observed event id.
func (c *Controller) CreateStream(ctx context.Context, token string, opts Options) (*Connection, error) {
	if token == "" {
		return nil, fmt.Errorf("creating stream: %w", ErrEmptyToken)
	}

	conn := &Connection{
		state:       StateConnecting,
		lastEventID: opts.LastEventID,
		logger:      c.logger,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+streamPath, nil)
	if err != nil {
		conn.transition(StateClosed)
		return nil, fmt.Errorf("creating stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Org-Id", c.orgID)
	if opts.LastEventID != "" {
		req.Header.Set("Last-Event-Id", opts.LastEventID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		conn.transition(StateClosed)
		return nil, fmt.Errorf("connecting stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		conn.transition(StateClosed)
		return nil, &transport.StatusError{
			StatusCode: resp.StatusCode,
			Operation:  "createStream",
			Category:   transport.Classify(resp.StatusCode),
		}
	}

	conn.mu.Lock()
	conn.state = StateOpen
	conn.body = resp.Body
	conn.mu.Unlock()

	c.logger.Debug("stream open", "resuming", opts.LastEventID != "")
	if opts.OnOpen != nil {
		opts.OnOpen()
	}

	go conn.readLoop(opts)

	return conn, nil
}

// Connection is the handle for one open stream. Transient: it is
// destroyed on disconnect or explicit Close and holds no replayable
// state beyond the last observed event id.
type Connection struct {
	mu          sync.Mutex
	state       State
	body        io.ReadCloser
	lastEventID string
	logger      *slog.Logger
}

// State returns the connection's current lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastEventID returns the most recent frame id observed, or the
// resumption cursor the stream was opened with if no frame carried one.
// Pass it to the next CreateStream call to resume after a disconnect.
func (c *Connection) LastEventID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastEventID
}

// Close shuts the connection down. Idempotent: closing an already-closed
// connection is a no-op.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Connection) closeLocked() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	if c.body != nil {
		_ = c.body.Close()
	}
	c.logger.Debug("stream closed")
}

func (c *Connection) transition(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// dispatch forwards one frame unless the connection has been closed in
// the meantime; no events are delivered after Close.
func (c *Connection) dispatch(opts Options, event Event) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	if event.ID != "" {
		c.lastEventID = event.ID
	}
	c.mu.Unlock()

	if opts.OnEvent != nil {
		opts.OnEvent(event)
	}
}

// readLoop scans SSE frames off the wire and dispatches them. It runs
// until the connection ends; on disconnect it closes the connection
// itself and reports the cause through OnError.
func (c *Connection) readLoop(opts Options) {
	scanner := bufio.NewScanner(c.body)
	scanner.Buffer(make([]byte, 64*1024), maxFrameSize)

	var eventID, eventType string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		// Empty line signals end of frame
		if line == "" {
			if len(dataLines) > 0 {
				frameType := eventType
				if frameType == "" {
					frameType = "message"
				}
				c.dispatch(opts, Event{
					ID:   eventID,
					Type: frameType,
					Data: strings.Join(dataLines, "\n"),
				})
			}
			eventID = ""
			eventType = ""
			dataLines = nil
			continue
		}

		// Comment lines keep the connection alive, nothing more
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "id":
			eventID = value
		case "event":
			eventType = value
		case "data":
			dataLines = append(dataLines, value)
		}
	}

	err := scanner.Err()

	c.mu.Lock()
	alreadyClosed := c.state == StateClosed
	c.closeLocked()
	c.mu.Unlock()

	if alreadyClosed {
		// Caller-initiated Close; the read error it provokes is not a
		// stream failure.
		return
	}

	if opts.OnError == nil {
		return
	}
	if err != nil {
		opts.OnError(fmt.Errorf("%w: %v", ErrDisconnected, err))
	} else {
		opts.OnError(ErrDisconnected)
	}
}
