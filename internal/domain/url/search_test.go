package url

import (
	"encoding/json"
	"testing"
)

func TestBuildSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		text     string
		want     string
	}{
		{name: "default template", template: "", text: "openai", want: "https://google.com/search?q=openai"},
		{name: "spaces escaped", template: DefaultSearchTemplate, text: "rust async", want: "https://google.com/search?q=rust+async"},
		{name: "reserved characters escaped", template: DefaultSearchTemplate, text: "a&b=c", want: "https://google.com/search?q=a%26b%3Dc"},
		{name: "custom engine", template: "https://duckduckgo.com/?q=%s", text: "go", want: "https://duckduckgo.com/?q=go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSearchURL(tt.template, tt.text); got != tt.want {
				t.Errorf("BuildSearchURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSubmission(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		openInNewTab bool
		want         Navigation
		wantOK       bool
	}{
		{
			name:   "bare domain navigates with https",
			text:   "github.com",
			want:   Navigation{URL: "https://github.com", Target: TargetCurrentTab},
			wantOK: true,
		},
		{
			name:   "address with scheme unchanged",
			text:   "http://example.org/path",
			want:   Navigation{URL: "http://example.org/path", Target: TargetCurrentTab},
			wantOK: true,
		},
		{
			name:         "address ignores new tab setting",
			text:         "www.example.com",
			openInNewTab: true,
			want:         Navigation{URL: "https://www.example.com", Target: TargetCurrentTab},
			wantOK:       true,
		},
		{
			name:   "plain word searches in current tab",
			text:   "openai",
			want:   Navigation{URL: "https://google.com/search?q=openai", Target: TargetCurrentTab, IsSearch: true},
			wantOK: true,
		},
		{
			name:         "search opens new tab when enabled",
			text:         "  openai  ",
			openInNewTab: true,
			want:         Navigation{URL: "https://google.com/search?q=openai", Target: TargetNewTab, IsSearch: true},
			wantOK:       true,
		},
		{
			name:   "blank is a no-op",
			text:   "   ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveSubmission(tt.text, tt.openInNewTab, DefaultSearchTemplate)
			if ok != tt.wantOK {
				t.Fatalf("ResolveSubmission() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ResolveSubmission() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNavigation_JSON(t *testing.T) {
	data, err := json.Marshal(Navigation{URL: "https://x.test", Target: TargetNewTab, IsSearch: true})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"url":"https://x.test","target":"new_tab","isSearch":true}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
