package suggest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/newtab/internal/application/port/mocks"
	"github.com/bnema/newtab/internal/infrastructure/extension"
	"github.com/bnema/newtab/internal/infrastructure/suggest"
	"github.com/bnema/newtab/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func upstream(t *testing.T, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "firefox", r.URL.Query().Get("client"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleProvider_ParsesAndCaches(t *testing.T) {
	ctx := testContext()
	var calls atomic.Int32
	srv := upstream(t, `["weather",["weather today","weather tomorrow"]]`, &calls)

	p := suggest.NewGoogleProvider(suggest.ProviderConfig{BaseURL: srv.URL})

	got, err := p.Complete(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, []string{"weather today", "weather tomorrow"}, got)

	got, err = p.Complete(ctx, " Weather ")
	require.NoError(t, err)
	assert.Equal(t, []string{"weather today", "weather tomorrow"}, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGoogleProvider_SkipsNullCompletions(t *testing.T) {
	var calls atomic.Int32
	srv := upstream(t, `["weather",["weather today",null,"weather tomorrow"]]`, &calls)

	p := suggest.NewGoogleProvider(suggest.ProviderConfig{BaseURL: srv.URL})

	got, err := p.Complete(testContext(), "weather")
	require.NoError(t, err)
	assert.Equal(t, []string{"weather today", "weather tomorrow"}, got)
}

func TestGoogleProvider_SendsEscapedQuery(t *testing.T) {
	ctx := testContext()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`["q",[]]`))
	}))
	defer srv.Close()

	p := suggest.NewGoogleProvider(suggest.ProviderConfig{BaseURL: srv.URL})
	_, err := p.Complete(ctx, "a&b c")
	require.NoError(t, err)
	assert.Equal(t, "a&b c", gotQuery)
}

func TestGoogleProvider_CollapsesConcurrentQueries(t *testing.T) {
	ctx := testContext()
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`["go",["golang"]]`))
	}))
	defer srv.Close()

	p := suggest.NewGoogleProvider(suggest.ProviderConfig{BaseURL: srv.URL})

	var wg sync.WaitGroup
	results := make([][]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Complete(ctx, "go")
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"golang"}, r)
	}
}

func TestGoogleProvider_UpstreamErrors(t *testing.T) {
	ctx := testContext()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := suggest.NewGoogleProvider(suggest.ProviderConfig{BaseURL: srv.URL})
	_, err := p.Complete(ctx, "weather")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRelayTransport_Fetch(t *testing.T) {
	ctx := testContext()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, suggest.RelayPath, r.URL.Path)
		assert.Equal(t, "weather", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`["weather today","weather tomorrow"]`))
	}))
	defer srv.Close()

	tr := suggest.NewRelayTransport(srv.URL+"/", time.Second)
	got, err := tr.Fetch(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, []string{"weather today", "weather tomorrow"}, got)
	assert.Equal(t, "relay", tr.Name())
}

func TestRelayTransport_Non200IsError(t *testing.T) {
	ctx := testContext()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch suggestions"}`))
	}))
	defer srv.Close()

	_, err := suggest.NewRelayTransport(srv.URL, time.Second).Fetch(ctx, "weather")
	require.Error(t, err)
}

func TestExtensionTransport_RoundTripThroughHost(t *testing.T) {
	ctx := testContext()
	provider := portmocks.NewMockSuggestionProvider(t)
	provider.EXPECT().Complete(mock.Anything, "weather").Return([]string{"weather today"}, nil)
	provider.EXPECT().Complete(mock.Anything, "golang").Return([]string{"golang tutorial"}, nil)

	router := extension.NewMessageRouter()
	require.NoError(t, extension.RegisterSuggestionHandlers(router, provider))
	host := extension.NewHost(ctx, router)
	srv := httptest.NewServer(host)
	defer srv.Close()
	defer func() { _ = host.Close() }()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	tr := suggest.NewExtensionTransport(endpoint, "moz-extension://1234", 2*time.Second)
	defer func() { _ = tr.Close() }()

	got, err := tr.Fetch(ctx, "weather")
	require.NoError(t, err)
	assert.Equal(t, []string{"weather today"}, got)

	got, err = tr.Fetch(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, []string{"golang tutorial"}, got)
}

func TestExtensionTransport_HostDownIsError(t *testing.T) {
	ctx := testContext()
	tr := suggest.NewExtensionTransport("ws://127.0.0.1:1/ext", "", 500*time.Millisecond)
	defer func() { _ = tr.Close() }()

	_, err := tr.Fetch(ctx, "weather")
	require.Error(t, err)
}

func TestExtensionTransport_FetchAfterClose(t *testing.T) {
	tr := suggest.NewExtensionTransport("ws://127.0.0.1:1/ext", "", time.Second)
	require.NoError(t, tr.Close())

	_, err := tr.Fetch(testContext(), "weather")
	assert.ErrorIs(t, err, suggest.ErrTransportClosed)
}

func TestSelectTransport(t *testing.T) {
	ctx := testContext()
	provider := portmocks.NewMockSuggestionProvider(t)

	tests := []struct {
		name    string
		pageURL string
		want    string
	}{
		{name: "chrome extension", pageURL: "chrome-extension://abc/newtab.html", want: "extension"},
		{name: "firefox extension", pageURL: "moz-extension://abc/index.html", want: "extension"},
		{name: "local file", pageURL: "file:///tmp/newtab/index.html", want: "extension"},
		{name: "web page", pageURL: "http://127.0.0.1:8787/", want: "relay"},
		{name: "in process", pageURL: "", want: "direct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := suggest.SelectTransport(ctx, suggest.TransportConfig{PageURL: tt.pageURL, Provider: provider})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
			if c, ok := tr.(interface{ Close() error }); ok {
				_ = c.Close()
			}
		})
	}
}

func TestSelectTransport_InProcessNeedsProvider(t *testing.T) {
	_, err := suggest.SelectTransport(testContext(), suggest.TransportConfig{})
	require.Error(t, err)
}
