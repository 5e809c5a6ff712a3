package extension

import (
	"context"
	"strings"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/logging"
)

// RegisterSuggestionHandlers wires fetchSuggestions to provider. The handler
// always answers an array: upstream failures become [].
func RegisterSuggestionHandlers(router *MessageRouter, provider port.SuggestionProvider) error {
	return router.RegisterHandler(suggestion.MessageTypeFetchSuggestions, MessageHandlerFunc(
		func(ctx context.Context, msg Message) (any, error) {
			req, err := ParsePayload[suggestion.Request](msg)
			if err != nil {
				return []string{}, nil
			}
			q := strings.TrimSpace(req.Query)
			if q == "" {
				return []string{}, nil
			}

			results, err := provider.Complete(ctx, q)
			if err != nil {
				logging.FromContext(ctx).Warn().Err(err).Str("query", q).Msg("extension suggestion fetch failed")
				return []string{}, nil
			}
			if results == nil {
				results = []string{}
			}
			return results, nil
		}))
}
