package url

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "http scheme unchanged", input: "http://example.org/path", want: "http://example.org/path"},
		{name: "https scheme unchanged", input: "https://example.com", want: "https://example.com"},
		{name: "other scheme unchanged", input: "ftp://files.example.com", want: "ftp://files.example.com"},
		{name: "domain gets https", input: "example.com", want: "https://example.com"},
		{name: "domain with path gets https", input: "example.com/path", want: "https://example.com/path"},
		{name: "surrounding spaces trimmed", input: "  example.com ", want: "https://example.com"},
		{name: "localhost with port gets https", input: "localhost:3000", want: "https://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeAddress(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"github.com", true},
		{"GitHub.com", true},
		{"http://example.org/path", true},
		{"https://example.com", true},
		{"www.example", true},
		{"sub-domain.example.co.uk", true},
		{"openai", false},
		{"how to cook", false},
		{"go 1.22 release", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LooksLikeAddress(tt.input); got != tt.want {
				t.Errorf("LooksLikeAddress(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.youtube.com/watch?v=1", "www.youtube.com"},
		{"https://example.com:8080/a", "example.com"},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.input); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFaviconURL(t *testing.T) {
	got := FaviconURL("github.com/bnema")
	want := "https://www.google.com/s2/favicons?domain=github.com&sz=64"
	if got != want {
		t.Errorf("FaviconURL() = %q, want %q", got, want)
	}
	if got := FaviconURL(""); got != "" {
		t.Errorf("FaviconURL(\"\") = %q, want empty", got)
	}
}
