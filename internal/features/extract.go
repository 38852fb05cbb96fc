package features

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/phishmodel/internal/model"
)

var (
	// ipv4Pattern matches a dotted quad with no range checking.
	ipv4Pattern = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{1,3}){3}$`)

	// bracketedIPv6Pattern matches a bracketed IPv6 literal anywhere in the host.
	bracketedIPv6Pattern = regexp.MustCompile(`\[[0-9a-fA-F:]+\]`)
)

// suspiciousWords is the watchlist counted by CountSuspiciousWords.
var suspiciousWords = []string{
	"login",
	"secure",
	"account",
	"update",
	"verify",
	"bank",
	"confirm",
	"webscr",
	"ebayisapi",
}

// SuspiciousWords returns a copy of the watchlist.
func SuspiciousWords() []string {
	out := make([]string, len(suspiciousWords))
	copy(out, suspiciousWords)
	return out
}

// HasIP returns 1 if host is a dotted quad or contains a bracketed IPv6
// literal, otherwise 0. Octet ranges are not checked.
func HasIP(host string) int {
	if ipv4Pattern.MatchString(host) || bracketedIPv6Pattern.MatchString(host) {
		return 1
	}
	return 0
}

// CountSubdomains returns the number of dot-separated labels in host beyond
// the last two. It does not consult the public suffix list, so
// "a.b.example.co.uk" counts 3.
func CountSubdomains(host string) int {
	return max(0, len(strings.Split(host, "."))-2)
}

// CountSuspiciousWords returns how many watchlist words occur in the
// lowercased URL. Each word counts at most once.
func CountSuspiciousWords(rawURL string) int {
	lower := strings.ToLower(rawURL)
	count := 0
	for _, w := range suspiciousWords {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}

// CountAtSymbols returns the number of '@' characters in the URL.
func CountAtSymbols(rawURL string) int {
	return strings.Count(rawURL, "@")
}

// ExternalAnchorsCount is a placeholder for the page-level anchor feature.
// Pages are never fetched, so it is always 0.
func ExternalAnchorsCount(string) int {
	return 0
}

// HasPasswordField is a placeholder for the page-level password input
// feature. Always 0.
func HasPasswordField(string) int {
	return 0
}

// TitleLength is a placeholder for the page title length feature. Always 0.
func TitleLength(string) int {
	return 0
}

// NotHTTPS returns 0 if the URL starts with exactly "https://" and 1
// otherwise. The prefix check is case-sensitive and the value is the
// inverse of "uses HTTPS"; downstream scorers depend on this polarity.
func NotHTTPS(rawURL string) int {
	if strings.HasPrefix(rawURL, "https://") {
		return 0
	}
	return 1
}

// URLLength returns the number of Unicode code points in the URL.
// Invalid UTF-8 bytes count as one each.
func URLLength(rawURL string) int {
	return utf8.RuneCountInString(rawURL)
}

// Extract computes the feature vector for a URL. It never fails and always
// fills all slots in model.FeatureNames order.
func Extract(rawURL string) model.FeatureVector {
	host := DeriveHost(rawURL)

	var v model.FeatureVector
	v[model.FeatureHasIP] = float64(HasIP(host))
	v[model.FeatureSubdomainCount] = float64(CountSubdomains(host))
	v[model.FeatureSuspiciousWords] = float64(CountSuspiciousWords(rawURL))
	v[model.FeatureAtSymbols] = float64(CountAtSymbols(rawURL))
	v[model.FeatureExternalAnchors] = float64(ExternalAnchorsCount(""))
	v[model.FeatureHasPasswordField] = float64(HasPasswordField(""))
	v[model.FeatureNotHTTPS] = float64(NotHTTPS(rawURL))
	v[model.FeatureURLLength] = float64(URLLength(rawURL))
	v[model.FeatureTitleLength] = float64(TitleLength(""))
	return v
}

// ExtractAll maps Extract over urls, preserving order.
func ExtractAll(urls []string) []model.FeatureVector {
	out := make([]model.FeatureVector, len(urls))
	for i, u := range urls {
		out[i] = Extract(u)
	}
	return out
}
