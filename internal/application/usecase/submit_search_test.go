package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/newtab/internal/application/port/mocks"
	"github.com/bnema/newtab/internal/application/usecase"
	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/url"
)

func TestSubmitSearchUseCase_AddressNavigatesCurrentTab(t *testing.T) {
	ctx := testContext()
	store := usecase.NewSettingsStore(newMemoryRepo())
	store.Load(ctx)
	navigator := portmocks.NewMockNavigator(t)
	navigator.EXPECT().
		Navigate(mock.Anything, url.Navigation{URL: "https://github.com", Target: url.TargetCurrentTab}).
		Return(nil)

	uc := usecase.NewSubmitSearchUseCase(store, navigator, "")

	nav, ok, err := uc.Submit(ctx, "github.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://github.com", nav.URL)
}

func TestSubmitSearchUseCase_SearchHonorsOpenInNewTab(t *testing.T) {
	ctx := testContext()
	store := usecase.NewSettingsStore(newMemoryRepo())
	store.Load(ctx)
	store.Update(ctx, entity.SettingsPatch{Search: &entity.SearchSettings{OpenInNewTab: true, ShowSuggestions: true}})

	navigator := portmocks.NewMockNavigator(t)
	uc := usecase.NewSubmitSearchUseCase(store, navigator, "https://duckduckgo.com/?q=%s")

	nav, ok := uc.Resolve("openai")
	require.True(t, ok)
	assert.Equal(t, url.Navigation{URL: "https://duckduckgo.com/?q=openai", Target: url.TargetNewTab, IsSearch: true}, nav)
}

func TestSubmitSearchUseCase_BlankIsNoop(t *testing.T) {
	ctx := testContext()
	store := usecase.NewSettingsStore(newMemoryRepo())
	navigator := portmocks.NewMockNavigator(t)
	uc := usecase.NewSubmitSearchUseCase(store, navigator, "")

	_, ok, err := uc.Submit(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubmitSearchUseCase_NavigatorError(t *testing.T) {
	ctx := testContext()
	store := usecase.NewSettingsStore(newMemoryRepo())
	navigator := portmocks.NewMockNavigator(t)
	navigator.EXPECT().Navigate(mock.Anything, mock.Anything).Return(errors.New("no browser"))

	uc := usecase.NewSubmitSearchUseCase(store, navigator, "")

	_, ok, err := uc.Submit(ctx, "openai")
	require.Error(t, err)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "failed to navigate")
}
