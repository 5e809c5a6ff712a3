package suggest

import (
	"context"

	"github.com/bnema/newtab/internal/application/port"
)

// DirectTransport calls the provider in process. It serves the terminal
// front-end, which has no page origin and no extension.
type DirectTransport struct {
	provider port.SuggestionProvider
}

var _ port.SuggestionTransport = (*DirectTransport)(nil)

// NewDirectTransport wraps provider as a transport.
func NewDirectTransport(provider port.SuggestionProvider) *DirectTransport {
	return &DirectTransport{provider: provider}
}

func (t *DirectTransport) Name() string {
	return "direct"
}

func (t *DirectTransport) Fetch(ctx context.Context, query string) ([]string, error) {
	return t.provider.Complete(ctx, query)
}
