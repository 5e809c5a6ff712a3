package styles

import (
	"fmt"
	"time"
)

// NoteBadge renders when a note was last edited, from unix milliseconds.
func (t *Theme) NoteBadge(updatedAtMs int64, now time.Time) string {
	if updatedAtMs <= 0 {
		return t.BadgeMuted.Render("never edited")
	}
	return t.BadgeMuted.Render(RelativeTime(time.UnixMilli(updatedAtMs), now))
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

var relativeUnits = []struct {
	limit  time.Duration
	size   time.Duration
	suffix string
}{
	{time.Hour, time.Minute, "m"},
	{24 * time.Hour, time.Hour, "h"},
	{7 * 24 * time.Hour, 24 * time.Hour, "d"},
	{30 * 24 * time.Hour, 7 * 24 * time.Hour, "w"},
	{365 * 24 * time.Hour, 30 * 24 * time.Hour, "mo"},
}

// RelativeTime formats tm relative to now, e.g. "5m ago".
func RelativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)
	if diff < time.Minute {
		return "just now"
	}
	for _, u := range relativeUnits {
		if diff < u.limit {
			return fmt.Sprintf("%d%s ago", int(diff/u.size), u.suffix)
		}
	}
	return fmt.Sprintf("%dy ago", int(diff/(365*24*time.Hour)))
}
