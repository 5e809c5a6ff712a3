package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	portmocks "github.com/bnema/newtab/internal/application/port/mocks"
	"github.com/bnema/newtab/internal/application/usecase"
)

func TestFetchSuggestionsUseCase_ShortQueriesSkipTransport(t *testing.T) {
	ctx := testContext()
	transport := portmocks.NewMockSuggestionTransport(t)
	uc := usecase.NewFetchSuggestionsUseCase(transport)

	for _, q := range []string{"", " ", "a", "  b  "} {
		assert.Equal(t, []string{}, uc.Execute(ctx, q), "query %q", q)
	}
	transport.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestFetchSuggestionsUseCase_TrimsAndReturnsResults(t *testing.T) {
	ctx := testContext()
	transport := portmocks.NewMockSuggestionTransport(t)
	transport.EXPECT().Name().Return("relay").Maybe()
	transport.EXPECT().Fetch(mock.Anything, "weather").Return([]string{"weather today", "weather tomorrow"}, nil)

	uc := usecase.NewFetchSuggestionsUseCase(transport)

	assert.Equal(t, []string{"weather today", "weather tomorrow"}, uc.Execute(ctx, "  weather "))
}

func TestFetchSuggestionsUseCase_ErrorsDegradeToEmpty(t *testing.T) {
	ctx := testContext()
	transport := portmocks.NewMockSuggestionTransport(t)
	transport.EXPECT().Name().Return("extension").Maybe()
	transport.EXPECT().Fetch(mock.Anything, "weather").Return(nil, errors.New("connection refused"))

	uc := usecase.NewFetchSuggestionsUseCase(transport)

	assert.Equal(t, []string{}, uc.Execute(ctx, "weather"))
}

func TestFetchSuggestionsUseCase_NilResultBecomesEmpty(t *testing.T) {
	ctx := testContext()
	transport := portmocks.NewMockSuggestionTransport(t)
	transport.EXPECT().Name().Return("direct").Maybe()
	transport.EXPECT().Fetch(mock.Anything, "we").Return(nil, nil)

	uc := usecase.NewFetchSuggestionsUseCase(transport)

	assert.Equal(t, []string{}, uc.Execute(ctx, "we"))
}
