package port

import "context"

// SuggestionTransport delivers a query to whatever can answer it from the
// current execution environment (relay endpoint, extension host, or the
// provider itself).
type SuggestionTransport interface {
	// Name identifies the transport in logs.
	Name() string

	// Fetch returns the completions for query. Callers treat any error as
	// an empty result.
	Fetch(ctx context.Context, query string) ([]string, error)
}

// SuggestionProvider is the upstream autocomplete service.
type SuggestionProvider interface {
	Complete(ctx context.Context, query string) ([]string, error)
}
