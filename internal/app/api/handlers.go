package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": s.deps.Build.Version,
	})
}

// handleSuggestions relays a query to the upstream provider. The page must
// keep working when the provider is down, so failures answer an empty list.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	results, err := s.deps.Provider.Complete(r.Context(), q)
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Str("query", q).Msg("suggestion relay failed")
		results = nil
	}
	if results == nil {
		results = []string{}
	}
	writeJSON(w, http.StatusOK, results)
}

type searchRequest struct {
	Text string `json:"text"`
}

// handleSearch resolves a search bar submission. The page performs the
// navigation itself.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nav, ok := s.deps.Search.Resolve(req.Text)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Settings.Get())
}

// handlePatchSettings merges a partial settings document. The result is
// validated before anything is stored.
func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current := s.deps.Settings.Get()
	patch, err := entity.DecodePatch(current, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := patch.ApplyTo(current).Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Settings.Update(r.Context(), patch))
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Settings.Reset(r.Context()))
}

func (s *Server) handleAppearance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entity.ResolveAppearance(s.deps.Settings.Get()))
}

// shortcutView is a shortcut as rendered by the page.
type shortcutView struct {
	entity.Shortcut
	Favicon string `json:"favicon"`
}

func newShortcutView(sc entity.Shortcut) shortcutView {
	return shortcutView{Shortcut: sc, Favicon: url.FaviconURL(sc.URL)}
}

type shortcutRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *Server) handleListShortcuts(w http.ResponseWriter, r *http.Request) {
	shortcuts := s.deps.Shortcuts.List(r.Context())
	views := make([]shortcutView, 0, len(shortcuts))
	for _, sc := range shortcuts {
		views = append(views, newShortcutView(sc))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddShortcut(w http.ResponseWriter, r *http.Request) {
	var req shortcutRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := s.deps.Shortcuts.Add(r.Context(), usecase.AddShortcutInput{Name: req.Name, URL: req.URL})
	if err != nil {
		writeShortcutError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newShortcutView(*sc))
}

func (s *Server) handleUpdateShortcut(w http.ResponseWriter, r *http.Request) {
	var req shortcutRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := s.deps.Shortcuts.Update(r.Context(), usecase.UpdateShortcutInput{
		ID:   r.PathValue("id"),
		Name: req.Name,
		URL:  req.URL,
	})
	if err != nil {
		writeShortcutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newShortcutView(*sc))
}

func (s *Server) handleDeleteShortcut(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Shortcuts.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeShortcutError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeShortcutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidShortcut):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrShortcutNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Notes.List())
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.deps.Notes.Add(r.Context(), usecase.NoteInput{Title: req.Title, Content: req.Content}))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := s.deps.Notes.Update(r.Context(), r.PathValue("id"), usecase.NoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		writeNoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeNoteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeNoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
