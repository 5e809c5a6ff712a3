package model

import (
	"time"

	"github.com/bnema/newtab/internal/domain/entity"
)

// dateLayouts maps each offered date format to its Go layout.
var dateLayouts = map[entity.DateFormat]string{
	entity.DateFormatShort:    "Mon, Jan 2",
	entity.DateFormatUS:       "01/02/2006",
	entity.DateFormatEU:       "02/01/2006",
	entity.DateFormatISO:      "2006-01-02",
	entity.DateFormatLongDate: "Jan 2, 2006",
}

// FormatClockTime renders t with two-digit hours and minutes.
func FormatClockTime(t time.Time, c entity.ClockSettings) string {
	layout := "15:04"
	if c.TimeFormat == entity.TimeFormat12 {
		layout = "03:04"
	}
	if c.ShowSeconds {
		layout += ":05"
	}
	if c.TimeFormat == entity.TimeFormat12 {
		layout += " PM"
	}
	return t.Format(layout)
}

// FormatClockDate renders t in one of the offered date formats. Unknown
// formats fall back to the short one.
func FormatClockDate(t time.Time, format entity.DateFormat) string {
	layout, ok := dateLayouts[format]
	if !ok {
		layout = dateLayouts[entity.DateFormatShort]
	}
	return t.Format(layout)
}

// ClockLines returns the lines of the clock widget for the display mode.
func ClockLines(t time.Time, c entity.ClockSettings) (timeLine, dateLine string) {
	switch c.DisplayMode {
	case entity.DisplayTimeOnly:
		return FormatClockTime(t, c), ""
	case entity.DisplayDateOnly:
		return "", FormatClockDate(t, c.DateFormat)
	default:
		return FormatClockTime(t, c), FormatClockDate(t, c.DateFormat)
	}
}

// clockInterval is how often the clock must repaint.
func clockInterval(c entity.ClockSettings) time.Duration {
	if c.ShowSeconds {
		return time.Second
	}
	return time.Minute
}
