package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/newtab/internal/domain/url"
)

func TestNavigator_OpensHTTPURLs(t *testing.T) {
	var opened []string
	nav := NewNavigatorWithOpener(func(u string) error {
		opened = append(opened, u)
		return nil
	})

	err := nav.Navigate(context.Background(), url.Navigation{
		URL:      "https://google.com/search?q=golang+channels",
		Target:   url.TargetNewTab,
		IsSearch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://google.com/search?q=golang+channels"}, opened)
}

func TestNavigator_RejectsOtherSchemes(t *testing.T) {
	nav := NewNavigatorWithOpener(func(string) error {
		t.Fatal("opener must not be called")
		return nil
	})

	for _, raw := range []string{"javascript:alert(1)", "file:///etc/passwd", "example.com"} {
		assert.Error(t, nav.Navigate(context.Background(), url.Navigation{URL: raw}), raw)
	}
}

func TestNavigator_WrapsOpenerError(t *testing.T) {
	boom := errors.New("no display")
	nav := NewNavigatorWithOpener(func(string) error { return boom })

	err := nav.Navigate(context.Background(), url.Navigation{URL: "https://github.com"})
	assert.ErrorIs(t, err, boom)
}
