package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
)

// SubmitSearchUseCase turns submitted search bar text into a navigation.
type SubmitSearchUseCase struct {
	settings       *SettingsStore
	navigator      port.Navigator
	searchTemplate string
}

// NewSubmitSearchUseCase creates a new search submission use case.
// An empty searchTemplate selects url.DefaultSearchTemplate.
func NewSubmitSearchUseCase(settings *SettingsStore, navigator port.Navigator, searchTemplate string) *SubmitSearchUseCase {
	if searchTemplate == "" {
		searchTemplate = url.DefaultSearchTemplate
	}
	return &SubmitSearchUseCase{
		settings:       settings,
		navigator:      navigator,
		searchTemplate: searchTemplate,
	}
}

// Resolve decides where text leads without navigating. ok is false for
// blank text.
func (uc *SubmitSearchUseCase) Resolve(text string) (url.Navigation, bool) {
	openInNewTab := uc.settings.Get().Search.OpenInNewTab
	return url.ResolveSubmission(text, openInNewTab, uc.searchTemplate)
}

// Submit resolves text and hands the result to the navigator. Blank text
// is a no-op and returns ok=false.
func (uc *SubmitSearchUseCase) Submit(ctx context.Context, text string) (url.Navigation, bool, error) {
	nav, ok := uc.Resolve(text)
	if !ok {
		return url.Navigation{}, false, nil
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Str("url", nav.URL).
		Stringer("target", nav.Target).
		Bool("search", nav.IsSearch).
		Msg("navigating")

	if err := uc.navigator.Navigate(ctx, nav); err != nil {
		return nav, true, fmt.Errorf("failed to navigate: %w", err)
	}
	return nav, true, nil
}
