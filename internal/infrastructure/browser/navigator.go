// Package browser hands navigations to the desktop's default browser.
package browser

import (
	"context"
	"fmt"
	neturl "net/url"

	"github.com/pkg/browser"

	"github.com/bnema/newtab/internal/application/port"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
)

// Opener opens an absolute URL outside of the process.
type Opener func(rawURL string) error

// Navigator opens submissions in the default browser. The terminal page has
// no tab of its own, so both targets open a browser window; the caller
// decides whether a current-tab navigation also closes the page.
type Navigator struct {
	open Opener
}

var _ port.Navigator = (*Navigator)(nil)

// NewNavigator returns a navigator backed by pkg/browser.
func NewNavigator() *Navigator {
	return NewNavigatorWithOpener(browser.OpenURL)
}

// NewNavigatorWithOpener returns a navigator that calls open.
func NewNavigatorWithOpener(open Opener) *Navigator {
	return &Navigator{open: open}
}

func (n *Navigator) Navigate(ctx context.Context, nav url.Navigation) error {
	u, err := neturl.Parse(nav.URL)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("refusing to open %q: not an absolute URL", nav.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme %s", nav.URL, u.Scheme)
	}

	logging.FromContext(ctx).Info().
		Str("url", nav.URL).
		Str("target", nav.Target.String()).
		Bool("search", nav.IsSearch).
		Msg("opening in browser")

	if err := n.open(u.String()); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
