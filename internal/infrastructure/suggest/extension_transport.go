package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/logging"
)

// ErrTransportClosed is returned by Fetch after Close.
var ErrTransportClosed = errors.New("extension transport closed")

// reply is the envelope the extension host sends back for requests that
// carry an id.
type reply struct {
	ID    string          `json:"id"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// ExtensionTransport sends fetchSuggestions messages to the extension
// background host over a WebSocket. The connection is dialed on first use
// and re-dialed after a failure. Replies are matched to requests by id, so
// several fetches may be in flight at once.
type ExtensionTransport struct {
	endpoint string
	origin   string
	timeout  time.Duration
	dialer   *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan reply
	closed  bool

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

var _ port.SuggestionTransport = (*ExtensionTransport)(nil)

// NewExtensionTransport creates a transport for the host at endpoint
// (ws:// or wss://). origin is sent as the Origin header, identifying the
// page the request comes from.
func NewExtensionTransport(endpoint, origin string, timeout time.Duration) *ExtensionTransport {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ExtensionTransport{
		endpoint: endpoint,
		origin:   origin,
		timeout:  timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
		pending: make(map[string]chan reply),
	}
}

func (t *ExtensionTransport) Name() string {
	return "extension"
}

func (t *ExtensionTransport) Fetch(ctx context.Context, query string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	conn, err := t.connect(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ch := make(chan reply, 1)

	t.mu.Lock()
	t.pending[id] = ch
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	req := suggestion.Request{ID: id, Type: suggestion.MessageTypeFetchSuggestions, Query: query}
	t.writeMu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}
	err = conn.WriteJSON(req)
	t.writeMu.Unlock()
	if err != nil {
		t.drop(conn, err)
		return nil, fmt.Errorf("failed to send extension message: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-ch:
		if !ok {
			return nil, errors.New("extension connection lost")
		}
		if r.Error != "" {
			return nil, fmt.Errorf("extension host: %s", r.Error)
		}
		var results []string
		if err := json.Unmarshal(r.Data, &results); err != nil {
			return nil, fmt.Errorf("failed to parse extension reply: %w", err)
		}
		return results, nil
	}
}

// Close closes the connection and fails pending fetches.
func (t *ExtensionTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	conn := t.conn
	t.mu.Unlock()

	var err error
	if conn != nil {
		t.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		t.writeMu.Unlock()
		err = conn.Close()
	}
	t.wg.Wait()
	return err
}

func (t *ExtensionTransport) connect(ctx context.Context) (*websocket.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, ErrTransportClosed
	}
	if t.conn != nil {
		return t.conn, nil
	}

	header := http.Header{}
	if t.origin != "" {
		header.Set("Origin", t.origin)
	}
	conn, _, err := t.dialer.DialContext(ctx, t.endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to extension host: %w", err)
	}
	logging.FromContext(ctx).Debug().Str("endpoint", t.endpoint).Msg("extension host connected")

	t.conn = conn
	t.wg.Add(1)
	go t.readLoop(conn)
	return conn, nil
}

func (t *ExtensionTransport) readLoop(conn *websocket.Conn) {
	defer t.wg.Done()
	for {
		var r reply
		if err := conn.ReadJSON(&r); err != nil {
			t.drop(conn, err)
			return
		}
		t.mu.Lock()
		ch, ok := t.pending[r.ID]
		if ok {
			delete(t.pending, r.ID)
		}
		t.mu.Unlock()
		if ok {
			ch <- r
		}
	}
}

// drop forgets conn and fails every request waiting on it.
func (t *ExtensionTransport) drop(conn *websocket.Conn, _ error) {
	t.mu.Lock()
	if t.conn != conn {
		t.mu.Unlock()
		return
	}
	t.conn = nil
	pending := t.pending
	t.pending = make(map[string]chan reply)
	t.mu.Unlock()

	_ = conn.Close()
	for _, ch := range pending {
		close(ch)
	}
}
