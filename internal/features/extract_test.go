package features

import (
	"testing"

	"github.com/nao1215/phishmodel/internal/model"
)

func TestHasIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want int
	}{
		{"192.168.1.1", 1},
		{"999.999.999.999", 1},
		{"[2001:db8::1]", 1},
		{"[::1]", 1},
		{"example.com", 0},
		{"1.2.3", 0},
		{"1.2.3.4.5", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			if got := HasIP(tt.host); got != tt.want {
				t.Errorf("HasIP(%q) = %d, want %d", tt.host, got, tt.want)
			}
		})
	}
}

func TestCountSubdomains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want int
	}{
		{"a.b.example.com", 2},
		{"www.example.com", 1},
		{"example.com", 0},
		{"com", 0},
		{"", 0},
		{"a.b.example.co.uk", 3},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			if got := CountSubdomains(tt.host); got != tt.want {
				t.Errorf("CountSubdomains(%q) = %d, want %d", tt.host, got, tt.want)
			}
		})
	}
}

func TestCountSuspiciousWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"three words", "http://secure-login.example.com/verify", 3},
		{"case insensitive", "HTTP://BANK.example.com/LOGIN", 2},
		{"each word once", "http://login.login.login/", 1},
		{"ebay legacy", "http://x.com/cgi-bin/webscr?cmd=_login&ebayisapi.dll", 3},
		{"none", "https://example.org/", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CountSuspiciousWords(tt.url); got != tt.want {
				t.Errorf("CountSuspiciousWords(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestCountAtSymbols(t *testing.T) {
	t.Parallel()

	if got := CountAtSymbols("http://user@evil.com@good.com"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := CountAtSymbols("https://example.com"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestNotHTTPS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want int
	}{
		{"https://example.com", 0},
		{"http://example.com", 1},
		{"ftp://example.com", 1},
		{"HTTPS://example.com", 1},
		{"example.com", 1},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if got := NotHTTPS(tt.url); got != tt.want {
				t.Errorf("NotHTTPS(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestURLLength(t *testing.T) {
	t.Parallel()

	if got := URLLength("https://example.com"); got != 19 {
		t.Errorf("expected 19, got %d", got)
	}
	if got := URLLength("https://例え.jp"); got != 13 {
		t.Errorf("expected 13 code points, got %d", got)
	}
	if got := URLLength(""); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestPlaceholderFeatures(t *testing.T) {
	t.Parallel()

	html := `<html><title>Login</title><a href="http://evil.com">x</a><input type="password"></html>`
	if ExternalAnchorsCount(html) != 0 || HasPasswordField(html) != 0 || TitleLength("Login") != 0 {
		t.Error("page-level features must always be 0")
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want model.FeatureVector
	}{
		{
			name: "https plain",
			url:  "https://example.com",
			want: model.FeatureVector{0, 0, 0, 0, 0, 0, 0, 19, 0},
		},
		{
			name: "ip host with login",
			url:  "http://192.168.1.1/login",
			want: model.FeatureVector{1, 2, 1, 0, 0, 0, 1, 24, 0},
		},
		{
			name: "userinfo tricks",
			url:  "http://user@evil.com@good.com",
			want: model.FeatureVector{0, 0, 0, 2, 0, 0, 1, 29, 0},
		},
		{
			name: "deep subdomain",
			url:  "http://secure-login.paypal.com.example.co.uk/verify",
			want: model.FeatureVector{0, 4, 3, 0, 0, 0, 1, 51, 0},
		},
		{
			name: "malformed",
			url:  "not a url",
			want: model.FeatureVector{0, 0, 0, 0, 0, 0, 1, 9, 0},
		},
		{
			name: "empty",
			url:  "",
			want: model.FeatureVector{0, 0, 0, 0, 0, 0, 1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Extract(tt.url)
			if got != tt.want {
				t.Errorf("Extract(%q)\n got  %v\n want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	urls := []string{"https://a.example.com", "http://b.example.com/login"}
	got := ExtractAll(urls)
	if len(got) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(got))
	}
	for i, u := range urls {
		if got[i] != Extract(u) {
			t.Errorf("row %d differs from Extract", i)
		}
	}
}
