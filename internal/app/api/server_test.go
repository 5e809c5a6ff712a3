package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/newtab/internal/app/api"
	portmocks "github.com/bnema/newtab/internal/application/port/mocks"
	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/domain/build"
	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/infrastructure/extension"
	"github.com/bnema/newtab/internal/infrastructure/persistence/jsonfile"
	"github.com/bnema/newtab/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fixture struct {
	server   *api.Server
	provider *portmocks.MockSuggestionProvider
	settings *usecase.SettingsStore
	host     *extension.Host
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := testContext()

	repo := jsonfile.NewStore(filepath.Join(t.TempDir(), "newtab.json"))
	settings := usecase.NewSettingsStore(repo)
	settings.Load(ctx)

	provider := portmocks.NewMockSuggestionProvider(t)
	router := extension.NewMessageRouter()
	require.NoError(t, extension.RegisterSuggestionHandlers(router, provider))
	host := extension.NewHost(ctx, router)
	t.Cleanup(func() { _ = host.Close() })

	server := api.NewServer(ctx, api.Deps{
		Settings:  settings,
		Shortcuts: usecase.NewManageShortcutsUseCase(repo, settings),
		Notes:     usecase.NewManageNotesUseCase(settings),
		Search:    usecase.NewSubmitSearchUseCase(settings, nil, ""),
		Provider:  provider,
		Extension: host,
		Build:     build.Info{Version: "1.2.3"},
	})
	return &fixture{server: server, provider: provider, settings: settings, host: host}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"status": "running", "version": "1.2.3"}, decode[map[string]string](t, rec))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSuggestions_MissingQuerySkipsUpstream(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/suggestions", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	f.provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestSuggestions_RelaysProvider(t *testing.T) {
	f := newFixture(t)
	f.provider.EXPECT().Complete(mock.Anything, "weather").Return([]string{"weather today", "weather tomorrow"}, nil)

	rec := f.do(t, http.MethodGet, "/api/suggestions?q=weather", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `["weather today","weather tomorrow"]`, rec.Body.String())
}

func TestSuggestions_UpstreamFailureIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.provider.EXPECT().Complete(mock.Anything, "weather").Return(nil, errors.New("upstream down"))

	rec := f.do(t, http.MethodGet, "/api/suggestions?q=weather", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/search", `{"text":"golang channels"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"url":"https://google.com/search?q=golang+channels","target":"current_tab","isSearch":true}`,
		rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/search", `{"text":"github.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://github.com","target":"current_tab","isSearch":false}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/search", `{"text":"   "}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/search", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettings_PatchMergesAndPersists(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPatch, "/api/settings", `{"background":{"blur":7},"search":{"openInNewTab":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[entity.Settings](t, rec)
	assert.Equal(t, 7, got.Background.Blur)
	assert.Equal(t, 100, got.Background.Brightness)
	assert.True(t, got.Search.OpenInNewTab)
	assert.True(t, got.Search.ShowSuggestions)
	assert.Equal(t, got, f.settings.Get())

	// searches now open in a new tab
	rec = f.do(t, http.MethodPost, "/api/search", `{"text":"weather"}`)
	assert.Contains(t, rec.Body.String(), `"target":"new_tab"`)
}

func TestSettings_PatchRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	before := f.settings.Get()

	tests := []struct {
		name string
		body string
	}{
		{name: "blur out of range", body: `{"background":{"blur":50}}`},
		{name: "unknown section", body: `{"wallpaper":{}}`},
		{name: "unknown field", body: `{"clock":{"blink":true}}`},
		{name: "bad enum", body: `{"clock":{"timeFormat":"36"}}`},
		{name: "not an object", body: `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPatch, "/api/settings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
	assert.Equal(t, before, f.settings.Get())
}

func TestSettings_ResetAndAppearance(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPatch, "/api/settings", `{"theme":{"mode":"light"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/appearance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	appearance := decode[entity.Appearance](t, rec)
	assert.False(t, appearance.Dark)
	assert.Equal(t, f.settings.Get().Theme.LightColor, appearance.BackgroundColor)
	assert.Equal(t, "blur(0px) brightness(100%)", appearance.Filter)

	rec = f.do(t, http.MethodPost, "/api/settings/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.DefaultSettings(), decode[entity.Settings](t, rec))
}

func TestShortcuts_CRUD(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/shortcuts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":"github","name":"GitHub","url":"https://github.com","favicon":"https://www.google.com/s2/favicons?domain=github.com&sz=64"}]`,
		rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/shortcuts", `{"name":"  ","url":"go.dev"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/shortcuts", `{"name":"Go","url":"go.dev"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[entity.Shortcut](t, rec)
	assert.Equal(t, "Go", created.Name)
	assert.Equal(t, "https://go.dev", created.URL)
	assert.True(t, strings.HasPrefix(created.ID, "shortcut-"))

	rec = f.do(t, http.MethodPut, "/api/shortcuts/"+created.ID, `{"name":"Golang","url":"https://go.dev/doc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Golang", decode[entity.Shortcut](t, rec).Name)

	rec = f.do(t, http.MethodPut, "/api/shortcuts/missing", `{"name":"x","url":"y.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/shortcuts/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/shortcuts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotes_CRUD(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/notes", `{"title":"","content":"buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	note := decode[entity.Note](t, rec)
	assert.Equal(t, entity.DefaultNoteTitle, note.Title)
	assert.NotEmpty(t, note.ID)

	rec = f.do(t, http.MethodPut, "/api/notes/"+note.ID, `{"title":"Groceries","content":"buy milk and eggs"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Groceries", decode[entity.Note](t, rec).Title)

	rec = f.do(t, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode[[]entity.Note](t, rec)
	require.Len(t, notes, 1)
	assert.Equal(t, "buy milk and eggs", notes[0].Content)

	rec = f.do(t, http.MethodPut, "/api/notes/nope", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/notes/"+note.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.settings.Get().Notes)
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/settings", nil)
	req.Header.Set("Origin", "chrome-extension://abcdef")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "chrome-extension://abcdef", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtensionChannelThroughServer(t *testing.T) {
	f := newFixture(t)
	f.provider.EXPECT().Complete(mock.Anything, "golang").Return([]string{"golang tutorial"}, nil)

	srv := httptest.NewServer(f.server.Handler())
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "moz-extension://1234")
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ext", header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "fetchSuggestions", "query": "golang"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `["golang tutorial"]`, string(data))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(testContext())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- f.server.Serve(ctx, ln, time.Second) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewServer_OnlyRegistersRoutesOfGivenDeps(t *testing.T) {
	provider := portmocks.NewMockSuggestionProvider(t)
	provider.EXPECT().Complete(mock.Anything, "go").Return([]string{"golang"}, nil)
	server := api.NewServer(testContext(), api.Deps{Provider: provider})

	do := func(method, target string) int {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/suggestions?q=go"))
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/settings"))
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/shortcuts"))
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/ext"))
}
