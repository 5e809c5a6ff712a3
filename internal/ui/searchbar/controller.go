// Package searchbar holds the search input state machine shared by the
// terminal page and the HTTP front-end: debounced suggestion fetching,
// keyboard selection and submission.
package searchbar

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/bnema/newtab/internal/domain/entity"
	"github.com/bnema/newtab/internal/domain/suggestion"
	"github.com/bnema/newtab/internal/domain/url"
	"github.com/bnema/newtab/internal/logging"
)

// DefaultDebounce is the pause after the last keystroke before suggestions
// are fetched.
const DefaultDebounce = 300 * time.Millisecond

// State of the search input.
type State int

const (
	// StateIdle means the input is empty.
	StateIdle State = iota
	// StateTyping means text is present and no suggestion list is shown for it yet.
	StateTyping
	// StateSuggested means the suggestion list for the current text is shown.
	StateSuggested
	// StateNavigating means a submission was handed to the navigator.
	StateNavigating
)

func (s State) String() string {
	switch s {
	case StateTyping:
		return "typing"
	case StateSuggested:
		return "suggested"
	case StateNavigating:
		return "navigating"
	default:
		return "idle"
	}
}

// Fetcher returns suggestions for a query and never fails.
type Fetcher interface {
	Execute(ctx context.Context, query string) []string
}

// Submitter resolves and performs a submission.
type Submitter interface {
	Submit(ctx context.Context, text string) (url.Navigation, bool, error)
}

// SettingsSource exposes the current settings.
type SettingsSource interface {
	Get() entity.Settings
}

// Snapshot is a consistent view of the controller.
type Snapshot struct {
	Query       string
	State       State
	Suggestions []string
	// Selected is the highlighted suggestion, -1 when none.
	Selected int
}

// Options tune a Controller.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// OnChange is called after every state change, outside the controller
	// lock and possibly from a timer goroutine.
	OnChange func(Snapshot)
}

// Controller is the search input state machine. Keystrokes restart a
// debounce timer; when it fires the current query is fetched and the result
// is published only if no newer fetch or keystroke superseded it.
type Controller struct {
	ctx       context.Context
	fetcher   Fetcher
	submitter Submitter
	settings  SettingsSource
	debounced func(func())
	onChange  func(Snapshot)

	mu          sync.Mutex
	query       string
	state       State
	suggestions []string
	selected    int
	generation  uint64
	closed      bool

	inflight sync.WaitGroup
}

// NewController creates a controller. ctx carries the logger and bounds
// every fetch and submission.
func NewController(
	ctx context.Context,
	fetcher Fetcher,
	submitter Submitter,
	settings SettingsSource,
	opts Options,
) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Controller{
		ctx:       logging.WithComponent(ctx, "searchbar"),
		fetcher:   fetcher,
		submitter: submitter,
		settings:  settings,
		debounced: debounce.New(opts.Debounce),
		onChange:  opts.OnChange,
		selected:  -1,
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	suggestions := make([]string, len(c.suggestions))
	copy(suggestions, c.suggestions)
	return Snapshot{
		Query:       c.query,
		State:       c.state,
		Suggestions: suggestions,
		Selected:    c.selected,
	}
}

// SetQuery records a keystroke. Queries long enough for suggestions restart
// the debounce timer; anything else clears the list.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = text

	if _, ok := suggestion.NormalizeQuery(text); !ok || !c.suggestionsEnabled() {
		c.clearLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.cancelPending()
		c.notify(snap)
		return
	}

	c.state = StateTyping
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.debounced(c.fire)
	c.notify(snap)
}

// MoveDown highlights the next suggestion, wrapping to the first.
func (c *Controller) MoveDown() {
	c.move(func(selected, n int) int {
		if selected >= n-1 {
			return 0
		}
		return selected + 1
	})
}

// MoveUp highlights the previous suggestion, wrapping to the last.
func (c *Controller) MoveUp() {
	c.move(func(selected, n int) int {
		if selected <= 0 {
			return n - 1
		}
		return selected - 1
	})
}

func (c *Controller) move(next func(selected, n int) int) {
	c.mu.Lock()
	n := len(c.suggestions)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	c.selected = next(c.selected, n)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Escape hides the suggestion list.
func (c *Controller) Escape() {
	c.dismiss()
}

// ClickOutside hides the suggestion list when the pointer lands outside the
// search widget.
func (c *Controller) ClickOutside() {
	c.dismiss()
}

func (c *Controller) dismiss() {
	c.mu.Lock()
	c.clearLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.cancelPending()
	c.notify(snap)
}

// Submit submits the highlighted suggestion, or the raw text when nothing
// is highlighted. ok is false when there was nothing to submit.
func (c *Controller) Submit() (url.Navigation, bool, error) {
	c.mu.Lock()
	text := c.query
	if c.selected >= 0 && c.selected < len(c.suggestions) {
		text = c.suggestions[c.selected]
	}
	c.mu.Unlock()
	return c.submit(text)
}

// SelectSuggestion submits suggestion i, as a click on it does.
func (c *Controller) SelectSuggestion(i int) (url.Navigation, bool, error) {
	c.mu.Lock()
	if i < 0 || i >= len(c.suggestions) {
		c.mu.Unlock()
		return url.Navigation{}, false, nil
	}
	text := c.suggestions[i]
	c.mu.Unlock()
	return c.submit(text)
}

func (c *Controller) submit(text string) (url.Navigation, bool, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return url.Navigation{}, false, nil
	}
	c.query = text
	c.clearLocked()
	c.mu.Unlock()
	c.cancelPending()

	nav, ok, err := c.submitter.Submit(c.ctx, text)

	c.mu.Lock()
	if ok && err == nil {
		c.state = StateNavigating
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	return nav, ok, err
}

// Close stops pending timers and waits for an in-flight fetch to return.
// Results arriving after Close are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.generation++
	c.mu.Unlock()

	c.cancelPending()
	c.inflight.Wait()
}

// fire runs on the debounce timer goroutine.
func (c *Controller) fire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	query := c.query
	c.inflight.Add(1)
	c.mu.Unlock()
	defer c.inflight.Done()

	results := c.fetcher.Execute(c.ctx, query)
	c.publish(gen, query, results)
}

func (c *Controller) publish(gen uint64, query string, results []string) {
	c.mu.Lock()
	if c.closed || gen != c.generation || query != c.query {
		c.mu.Unlock()
		logging.FromContext(c.ctx).Debug().
			Str("query", query).
			Uint64("generation", gen).
			Msg("dropping stale suggestions")
		return
	}
	c.suggestions = results
	c.selected = -1
	c.state = StateSuggested
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// clearLocked empties the list and invalidates any in-flight fetch.
func (c *Controller) clearLocked() {
	c.suggestions = nil
	c.selected = -1
	c.generation++
	if strings.TrimSpace(c.query) == "" {
		c.state = StateIdle
	} else {
		c.state = StateTyping
	}
}

// cancelPending replaces a pending debounced fetch with a no-op.
func (c *Controller) cancelPending() {
	c.debounced(func() {})
}

func (c *Controller) suggestionsEnabled() bool {
	if c.settings == nil {
		return true
	}
	return c.settings.Get().Search.ShowSuggestions
}

func (c *Controller) notify(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}
