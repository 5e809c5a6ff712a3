package suggest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/logging"
)

// DefaultExtensionEndpoint is where the extension host listens by default.
const DefaultExtensionEndpoint = "ws://127.0.0.1:8787/ext"

// TransportConfig describes the execution environment of the page.
type TransportConfig struct {
	// PageURL is the URL the page was loaded from. Empty means the caller
	// runs in process (terminal front-end, CLI).
	PageURL string
	// RelayBaseURL overrides the relay origin; by default it is the origin
	// of PageURL.
	RelayBaseURL string
	// ExtensionEndpoint is the WebSocket endpoint of the extension host.
	ExtensionEndpoint string
	Timeout           time.Duration
	// Provider backs the in-process transport.
	Provider port.SuggestionProvider
}

// SelectTransport picks the transport for the environment once, at startup.
// Extension and local-file pages use the extension host, ordinary pages the
// relay of their own origin, and in-process callers the provider itself.
func SelectTransport(ctx context.Context, cfg TransportConfig) (port.SuggestionTransport, error) {
	log := logging.FromContext(ctx)
	env := suggestion.DetectEnvironment(cfg.PageURL)

	var transport port.SuggestionTransport
	switch env {
	case suggestion.EnvironmentExtension:
		endpoint := cfg.ExtensionEndpoint
		if endpoint == "" {
			endpoint = DefaultExtensionEndpoint
		}
		transport = NewExtensionTransport(endpoint, pageOrigin(cfg.PageURL), cfg.Timeout)
	case suggestion.EnvironmentWebPage:
		base := cfg.RelayBaseURL
		if base == "" {
			base = pageOrigin(cfg.PageURL)
		}
		if base == "" {
			return nil, fmt.Errorf("cannot derive relay origin from %q", cfg.PageURL)
		}
		transport = NewRelayTransport(base, cfg.Timeout)
	default:
		if cfg.Provider == nil {
			return nil, fmt.Errorf("in-process suggestions need a provider")
		}
		transport = NewDirectTransport(cfg.Provider)
	}

	log.Info().
		Str("environment", env.String()).
		Str("transport", transport.Name()).
		Msg("suggestion transport selected")
	return transport, nil
}

// pageOrigin returns scheme://host of rawURL, or "" for URLs without a host.
func pageOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
