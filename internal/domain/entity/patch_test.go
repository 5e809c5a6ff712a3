package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/newtab/internal/domain/entity"
)

func TestSettingsPatch_ApplyTo_ReplacesOnlyPresentSections(t *testing.T) {
	s := entity.DefaultSettings()
	search := entity.SearchSettings{OpenInNewTab: true}

	got := entity.SettingsPatch{Search: &search}.ApplyTo(s)

	assert.Equal(t, search, got.Search)
	assert.Equal(t, s.Theme, got.Theme)
	assert.Equal(t, s.Clock, got.Clock)
}

func TestSettingsPatch_IsEmpty(t *testing.T) {
	assert.True(t, entity.SettingsPatch{}.IsEmpty())
	notes := []entity.Note{}
	assert.False(t, entity.SettingsPatch{Notes: &notes}.IsEmpty())
}

func TestDecodePatch_MergesPartialSectionOverCurrent(t *testing.T) {
	current := entity.DefaultSettings()
	current.Clock.FontSize = 64

	p, err := entity.DecodePatch(current, []byte(`{"clock": {"showSeconds": true}}`))
	require.NoError(t, err)
	require.NotNil(t, p.Clock)
	assert.True(t, p.Clock.ShowSeconds)
	assert.Equal(t, 64, p.Clock.FontSize)
	assert.Nil(t, p.Theme)
}

func TestDecodePatch_RejectsUnknownSectionAndField(t *testing.T) {
	current := entity.DefaultSettings()

	_, err := entity.DecodePatch(current, []byte(`{"fonts": {}}`))
	require.Error(t, err)

	_, err = entity.DecodePatch(current, []byte(`{"clock": {"colour": "#ffffff"}}`))
	require.Error(t, err)
}

func TestSettings_PatchField(t *testing.T) {
	s := entity.DefaultSettings()

	p, err := s.PatchField("theme.mode", "light")
	require.NoError(t, err)
	require.NotNil(t, p.Theme)
	assert.Equal(t, entity.ThemeLight, p.Theme.Mode)
	assert.Equal(t, s.Theme.DarkColor, p.Theme.DarkColor)

	p, err = s.PatchField("background.blur", "7")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Background.Blur)

	_, err = s.PatchField("blur", "7")
	require.Error(t, err)
}

func TestResolveAppearance(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.Settings)
		want   entity.Appearance
	}{
		{
			name:   "solid falls back to dark theme colour",
			mutate: func(*entity.Settings) {},
			want: entity.Appearance{
				Dark: true, BackgroundType: entity.BackgroundSolid, BackgroundColor: "#09090b",
				Filter: "blur(0px) brightness(100%)", Position: "50% center", ViewPreset: entity.PresetCard,
			},
		},
		{
			name: "solid falls back to light theme colour",
			mutate: func(s *entity.Settings) {
				s.Theme.Mode = entity.ThemeLight
			},
			want: entity.Appearance{
				BackgroundType: entity.BackgroundSolid, BackgroundColor: "#ffffff",
				Filter: "blur(0px) brightness(100%)", Position: "50% center", ViewPreset: entity.PresetCard,
			},
		},
		{
			name: "explicit solid colour wins",
			mutate: func(s *entity.Settings) {
				s.Background.SolidColor = "#123456"
			},
			want: entity.Appearance{
				Dark: true, BackgroundType: entity.BackgroundSolid, BackgroundColor: "#123456",
				Filter: "blur(0px) brightness(100%)", Position: "50% center", ViewPreset: entity.PresetCard,
			},
		},
		{
			name: "video uses black fallback and filter",
			mutate: func(s *entity.Settings) {
				s.Background = entity.BackgroundSettings{
					Type: entity.BackgroundVideo, VideoURL: "https://v.example/a.mp4",
					Blur: 3, Brightness: 80, Position: 20,
				}
			},
			want: entity.Appearance{
				Dark: true, BackgroundType: entity.BackgroundVideo, BackgroundColor: "#000000",
				BackgroundVideo: "https://v.example/a.mp4",
				Filter:          "blur(3px) brightness(80%)", Position: "20% center", ViewPreset: entity.PresetCard,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entity.DefaultSettings()
			tt.mutate(&s)
			assert.Equal(t, tt.want, entity.ResolveAppearance(s))
		})
	}
}

func TestValidateShortcutInput(t *testing.T) {
	name, u, err := entity.ValidateShortcutInput("  Docs ", " go.dev ")
	require.NoError(t, err)
	assert.Equal(t, "Docs", name)
	assert.Equal(t, "go.dev", u)

	_, _, err = entity.ValidateShortcutInput(" ", "go.dev")
	assert.ErrorIs(t, err, entity.ErrInvalidShortcut)
}
