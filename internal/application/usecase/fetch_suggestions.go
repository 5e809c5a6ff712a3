package usecase

import (
	"context"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/logging"
)

// FetchSuggestionsUseCase resolves a query to completions through the
// transport selected for the current environment. It never fails: every
// error degrades to an empty list.
type FetchSuggestionsUseCase struct {
	transport port.SuggestionTransport
}

// NewFetchSuggestionsUseCase creates a new suggestion use case.
func NewFetchSuggestionsUseCase(transport port.SuggestionTransport) *FetchSuggestionsUseCase {
	return &FetchSuggestionsUseCase{transport: transport}
}

// Execute returns the completions for query. Queries shorter than
// suggestion.MinQueryLength after trimming return an empty list without
// touching the transport.
func (uc *FetchSuggestionsUseCase) Execute(ctx context.Context, query string) []string {
	q, ok := suggestion.NormalizeQuery(query)
	if !ok {
		return []string{}
	}

	log := logging.FromContext(ctx)
	results, err := uc.transport.Fetch(ctx, q)
	if err != nil {
		log.Warn().
			Err(err).
			Str("transport", uc.transport.Name()).
			Str("query", q).
			Msg("suggestion fetch failed")
		return []string{}
	}
	if results == nil {
		return []string{}
	}

	log.Debug().
		Str("transport", uc.transport.Name()).
		Str("query", q).
		Int("count", len(results)).
		Msg("suggestions fetched")
	return results
}

// TransportName reports which transport serves this use case.
func (uc *FetchSuggestionsUseCase) TransportName() string {
	return uc.transport.Name()
}
