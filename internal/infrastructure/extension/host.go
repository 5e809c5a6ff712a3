package extension

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/semaphore"

	"github.com/bnema/newtab/internal/logging"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 << 10
	// maxInFlight bounds concurrent handler runs per connection.
	maxInFlight = 8
)

var extensionOriginSchemes = map[string]struct{}{
	"chrome-extension":     {},
	"moz-extension":        {},
	"safari-web-extension": {},
}

// Host accepts extension connections and answers their messages through a
// MessageRouter. It implements http.Handler.
type Host struct {
	router   *MessageRouter
	baseCtx  context.Context
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
	wg        sync.WaitGroup
}

// NewHost creates a host dispatching to router. ctx carries the logger and
// bounds the lifetime of handler calls.
func NewHost(ctx context.Context, router *MessageRouter) *Host {
	h := &Host{
		router:  router,
		baseCtx: logging.WithComponent(ctx, "extension-host"),
		clients: make(map[*websocket.Conn]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: AllowedOrigin,
	}
	return h
}

// AllowedOrigin accepts extension pages, local files, loopback pages and
// non-browser clients that send no Origin.
func AllowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == "null" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if _, ok := extensionOriginSchemes[strings.ToLower(u.Scheme)]; ok {
		return true
	}
	if u.Scheme == "file" {
		return true
	}
	switch u.Hostname() {
	case "127.0.0.1", "localhost", "::1":
		return u.Scheme == "http" || u.Scheme == "https"
	}
	return false
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(h.baseCtx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("origin", r.Header.Get("Origin")).Msg("extension upgrade failed")
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = struct{}{}
	h.clientsMu.Unlock()

	log.Info().Str("remote", r.RemoteAddr).Str("origin", r.Header.Get("Origin")).Msg("extension connected")

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.serve(conn)
	}()
}

// Clients returns the number of open connections.
func (h *Host) Clients() int {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and waits for their goroutines.
func (h *Host) Close() error {
	h.clientsMu.Lock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
	h.clientsMu.Unlock()

	h.wg.Wait()
	return nil
}

func (h *Host) serve(conn *websocket.Conn) {
	log := logging.FromContext(h.baseCtx)

	ctx, cancel := context.WithCancel(h.baseCtx)
	var (
		writeMu  sync.Mutex
		handlers sync.WaitGroup
		sem      = semaphore.NewWeighted(maxInFlight)
	)

	done := make(chan struct{})
	defer func() {
		cancel()
		close(done)
		handlers.Wait()

		h.clientsMu.Lock()
		delete(h.clients, conn)
		h.clientsMu.Unlock()
		_ = conn.Close()
		log.Debug().Msg("extension disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				writeMu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("extension connection closed unexpectedly")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		handlers.Add(1)
		go func(data []byte) {
			defer handlers.Done()
			defer sem.Release(1)

			reqCtx := logging.WithRequestID(ctx, logging.GenerateRequestID())
			out := h.router.Dispatch(reqCtx, data)

			writeMu.Lock()
			defer writeMu.Unlock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				logging.FromContext(reqCtx).Debug().Err(err).Msg("failed to write extension reply")
			}
		}(data)
	}
}
