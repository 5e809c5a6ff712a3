package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/newtab/internal/domain/entity"
)

var clockRef = time.Date(2024, time.January, 12, 15, 4, 5, 0, time.UTC)

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		format  entity.TimeFormat
		seconds bool
		want    string
	}{
		{"24h", clockRef, entity.TimeFormat24, false, "15:04"},
		{"24h with seconds", clockRef, entity.TimeFormat24, true, "15:04:05"},
		{"12h", clockRef, entity.TimeFormat12, false, "03:04 PM"},
		{"12h with seconds", clockRef, entity.TimeFormat12, true, "03:04:05 PM"},
		{"12h morning", clockRef.Add(-6 * time.Hour), entity.TimeFormat12, false, "09:04 AM"},
		{"24h midnight", time.Date(2024, 1, 12, 0, 7, 0, 0, time.UTC), entity.TimeFormat24, false, "00:07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatClockTime(tt.at, entity.ClockSettings{TimeFormat: tt.format, ShowSeconds: tt.seconds})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClockDate(t *testing.T) {
	tests := []struct {
		format entity.DateFormat
		want   string
	}{
		{entity.DateFormatShort, "Fri, Jan 12"},
		{entity.DateFormatUS, "01/12/2024"},
		{entity.DateFormatEU, "12/01/2024"},
		{entity.DateFormatISO, "2024-01-12"},
		{entity.DateFormatLongDate, "Jan 12, 2024"},
		{entity.DateFormat("bogus"), "Fri, Jan 12"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClockDate(clockRef, tt.format))
		})
	}
}

func TestClockLines_DisplayModes(t *testing.T) {
	c := entity.DefaultSettings().Clock

	c.DisplayMode = entity.DisplayTimeOnly
	timeLine, dateLine := ClockLines(clockRef, c)
	assert.Equal(t, "15:04", timeLine)
	assert.Empty(t, dateLine)

	c.DisplayMode = entity.DisplayDateOnly
	timeLine, dateLine = ClockLines(clockRef, c)
	assert.Empty(t, timeLine)
	assert.Equal(t, "Fri, Jan 12", dateLine)

	c.DisplayMode = entity.DisplayBoth
	timeLine, dateLine = ClockLines(clockRef, c)
	assert.Equal(t, "15:04", timeLine)
	assert.Equal(t, "Fri, Jan 12", dateLine)
}

func TestClockInterval(t *testing.T) {
	assert.Equal(t, time.Minute, clockInterval(entity.ClockSettings{}))
	assert.Equal(t, time.Second, clockInterval(entity.ClockSettings{ShowSeconds: true}))
}
