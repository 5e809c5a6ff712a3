// Package suggest implements the upstream suggestion provider and the
// transports the suggestion client can use.
package suggest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/infrastructure/cache"
	"github.com/bnema/newtab/internal/logging"
)

const (
	// DefaultProviderURL is Google's autocomplete endpoint.
	DefaultProviderURL = "https://suggestqueries.google.com/complete/search"
	providerClient     = "firefox"
	maxProviderBody    = 256 << 10
)

// ProviderConfig configures GoogleProvider. Zero values select defaults.
type ProviderConfig struct {
	BaseURL       string
	Timeout       time.Duration
	CacheSize     int
	CacheTTL      time.Duration
	RatePerSecond float64
	Burst         int
	UserAgent     string
	HTTPClient    *http.Client
}

// GoogleProvider queries the upstream autocomplete API. Results are cached
// per normalized query, identical concurrent queries share one upstream
// request, and upstream calls are rate limited.
type GoogleProvider struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	cache     port.Cache[string, []string]
	group     singleflight.Group
	limiter   *rate.Limiter
}

var _ port.SuggestionProvider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a provider from cfg.
func NewGoogleProvider(cfg ProviderConfig) *GoogleProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultProviderURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &GoogleProvider{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		client:    client,
		cache:     cache.NewExpiringLRU[string, []string](cfg.CacheSize, cfg.CacheTTL),
		limiter:   rate.NewLimiter(limit, cfg.Burst),
	}
}

// Complete returns the upstream completions for query.
func (p *GoogleProvider) Complete(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	key := strings.ToLower(query)

	if hit, ok := p.cache.Get(key); ok {
		logging.FromContext(ctx).Debug().Str("query", query).Msg("suggestion cache hit")
		return slices.Clone(hit), nil
	}

	// The shared fetch must outlive a single caller's cancellation.
	ch := p.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return p.fetch(fctx, query)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		results := res.Val.([]string)
		p.cache.Set(key, results)
		return slices.Clone(results), nil
	}
}

func (p *GoogleProvider) fetch(ctx context.Context, query string) ([]string, error) {
	log := logging.FromContext(ctx)

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limited: %w", err)
	}

	endpoint, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider url: %w", err)
	}
	q := endpoint.Query()
	q.Set("client", providerClient)
	q.Set("q", query)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProviderBody))
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	results, err := suggestion.ParseProviderResponse(body)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("query", query).
		Int("count", len(results)).
		Dur("took", time.Since(start)).
		Msg("provider suggestions fetched")
	return results, nil
}
