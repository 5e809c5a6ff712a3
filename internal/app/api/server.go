// Package api exposes the new tab page over HTTP: the suggestion relay, the
// settings document, shortcuts, notes and the extension messaging channel.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/domain/build"
	"github.com/bnema/newtab/internal/logging"
)

const (
	readHeaderTimeout      = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	maxRequestBody         = 1 << 20
)

// Deps are the use cases the server exposes. Routes of nil dependencies are
// not registered.
type Deps struct {
	Settings  *usecase.SettingsStore
	Shortcuts *usecase.ManageShortcutsUseCase
	Notes     *usecase.ManageNotesUseCase
	Search    *usecase.SubmitSearchUseCase
	// Provider backs the relay endpoint.
	Provider port.SuggestionProvider
	// Extension serves /ext when set.
	Extension http.Handler
	Build     build.Info
}

// Server routes HTTP requests to the use cases.
type Server struct {
	deps    Deps
	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a server and registers its routes. Request logs go to
// the logger carried by ctx.
func NewServer(ctx context.Context, deps Deps) *Server {
	s := &Server{
		deps: deps,
		mux:  http.NewServeMux(),
	}
	s.setupRoutes()
	s.handler = requestLogger(ctx, cors(s.mux))
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	if s.deps.Provider != nil {
		s.mux.HandleFunc("GET /api/suggestions", s.handleSuggestions)
	}
	if s.deps.Search != nil {
		s.mux.HandleFunc("POST /api/search", s.handleSearch)
	}

	if s.deps.Settings != nil {
		s.mux.HandleFunc("GET /api/settings", s.handleGetSettings)
		s.mux.HandleFunc("PATCH /api/settings", s.handlePatchSettings)
		s.mux.HandleFunc("POST /api/settings/reset", s.handleResetSettings)
		s.mux.HandleFunc("GET /api/appearance", s.handleAppearance)
	}

	if s.deps.Shortcuts != nil {
		s.mux.HandleFunc("GET /api/shortcuts", s.handleListShortcuts)
		s.mux.HandleFunc("POST /api/shortcuts", s.handleAddShortcut)
		s.mux.HandleFunc("PUT /api/shortcuts/{id}", s.handleUpdateShortcut)
		s.mux.HandleFunc("DELETE /api/shortcuts/{id}", s.handleDeleteShortcut)
	}

	if s.deps.Notes != nil {
		s.mux.HandleFunc("GET /api/notes", s.handleListNotes)
		s.mux.HandleFunc("POST /api/notes", s.handleAddNote)
		s.mux.HandleFunc("PUT /api/notes/{id}", s.handleUpdateNote)
		s.mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)
	}

	if s.deps.Extension != nil {
		s.mux.Handle("GET /ext", s.deps.Extension)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe binds addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// waiting at most shutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	log := logging.FromContext(ctx)
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		log.Info().Msg("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
