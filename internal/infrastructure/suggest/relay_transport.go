package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
)

// RelayPath is the same-origin relay endpoint.
const RelayPath = "/api/suggestions"

// RelayTransport fetches suggestions from the relay endpoint of the server
// that serves the page.
type RelayTransport struct {
	baseURL string
	client  *http.Client
}

var _ port.SuggestionTransport = (*RelayTransport)(nil)

// NewRelayTransport creates a transport calling {baseURL}/api/suggestions.
func NewRelayTransport(baseURL string, timeout time.Duration) *RelayTransport {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RelayTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *RelayTransport) Name() string {
	return "relay"
}

func (t *RelayTransport) Fetch(ctx context.Context, query string) ([]string, error) {
	endpoint := t.baseURL + RelayPath + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}
	return suggestion.ParseRelayResponse(body)
}
