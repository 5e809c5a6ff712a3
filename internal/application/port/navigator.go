package port

import (
	"context"

	"github.com/bnema/newtab/internal/domain/url"
)

// Navigator performs the terminal navigation of a search bar submission.
type Navigator interface {
	Navigate(ctx context.Context, nav url.Navigation) error
}
