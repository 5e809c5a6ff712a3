package entity

import "fmt"

// VideoFallbackColor is painted behind a video background while it loads.
const VideoFallbackColor = "#000000"

// Appearance holds the effective values derived from the settings for the
// live preview.
type Appearance struct {
	Dark            bool           `json:"dark"`
	BackgroundType  BackgroundType `json:"backgroundType"`
	BackgroundColor string         `json:"backgroundColor,omitempty"`
	BackgroundImage string         `json:"backgroundImage,omitempty"`
	BackgroundVideo string         `json:"backgroundVideo,omitempty"`
	Filter          string         `json:"filter"`
	Position        string         `json:"position"`
	TextColor       string         `json:"textColor,omitempty"`
	ViewPreset      ViewPreset     `json:"viewPreset"`
}

// ResolveAppearance computes the effective appearance of s.
func ResolveAppearance(s Settings) Appearance {
	bg := s.Background
	a := Appearance{
		Dark:           s.Theme.Mode == ThemeDark,
		BackgroundType: bg.Type,
		Filter:         fmt.Sprintf("blur(%dpx) brightness(%d%%)", bg.Blur, bg.Brightness),
		Position:       fmt.Sprintf("%d%% center", bg.Position),
		TextColor:      s.Clock.TextColor,
		ViewPreset:     s.Theme.ViewPreset,
	}

	switch bg.Type {
	case BackgroundImage:
		a.BackgroundImage = bg.ImageURL
	case BackgroundVideo:
		a.BackgroundVideo = bg.VideoURL
		a.BackgroundColor = VideoFallbackColor
	default:
		a.BackgroundColor = s.ThemeColor()
		if bg.SolidColor != "" {
			a.BackgroundColor = bg.SolidColor
		}
	}
	return a
}

// ThemeColor returns the theme colour matching the current mode.
func (s Settings) ThemeColor() string {
	if s.Theme.Mode == ThemeDark {
		return s.Theme.DarkColor
	}
	return s.Theme.LightColor
}
