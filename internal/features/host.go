package features

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// HostParts is a host split into subdomain, registrable label and public
// suffix. IP literals are reported in Domain with the other parts empty.
type HostParts struct {
	Subdomain string
	Domain    string
	Suffix    string
}

// Join rejoins the non-empty parts with dots.
func (p HostParts) Join() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Subdomain, p.Domain, p.Suffix} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ".")
}

// Registrable returns domain.suffix, or just the domain when there is no
// known suffix.
func (p HostParts) Registrable() string {
	if p.Suffix == "" {
		return p.Domain
	}
	if p.Domain == "" {
		return p.Suffix
	}
	return p.Domain + "." + p.Suffix
}

// IsIP reports whether the parts describe an IP literal.
func (p HostParts) IsIP() bool {
	return p.Subdomain == "" && p.Suffix == "" &&
		(ipv4Pattern.MatchString(p.Domain) || strings.HasPrefix(p.Domain, "["))
}

// SplitHost extracts the network location of rawURL and splits it against
// the public suffix list. The scheme is optional. The returned parts are
// lowercase.
//
// Whitespace and control characters are trimmed from the ends of the
// network location only. Interior ones stay inside their label, so
// "a.b c.example.com" splits into subdomain "a.b c", domain "example" and
// suffix "com". Phishing URLs carry such hosts, and rejecting them would
// zero subdomain_count for exactly the rows that need it.
func SplitHost(rawURL string) (HostParts, error) {
	netloc := strings.TrimFunc(networkLocation(rawURL), isSpaceOrControl)
	if netloc == "" {
		return HostParts{}, ErrEmptyHost
	}

	host := strings.ToLower(netloc)

	if strings.HasPrefix(host, "[") {
		inner := strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
		addr, err := netip.ParseAddr(inner)
		if err != nil || !addr.Is6() || !strings.HasSuffix(host, "]") {
			return HostParts{}, fmt.Errorf("%w: %q is not an IPv6 literal", ErrInvalidHost, netloc)
		}
		return HostParts{Domain: host}, nil
	}
	if ipv4Pattern.MatchString(host) {
		return HostParts{Domain: host}, nil
	}

	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" {
			return HostParts{}, fmt.Errorf("%w: %q has an empty label", ErrInvalidHost, netloc)
		}
	}

	suffix := icannSuffix(host)
	if suffix == host {
		// The whole host is a public suffix, e.g. "com" or "co.uk".
		return HostParts{Suffix: suffix}, nil
	}

	rest := host
	if suffix != "" {
		rest = strings.TrimSuffix(host, "."+suffix)
	}
	domain := rest
	subdomain := ""
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		subdomain = rest[:i]
		domain = rest[i+1:]
	}
	return HostParts{Subdomain: subdomain, Domain: domain, Suffix: suffix}, nil
}

func isSpaceOrControl(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// icannSuffix returns the ICANN public suffix of host, or "" when the
// top-level label is not on the list. Private registry suffixes such as
// "blogspot.com" are reduced to their ICANN part.
func icannSuffix(host string) string {
	s := host
	for {
		suffix, icann := publicsuffix.PublicSuffix(s)
		if icann {
			return suffix
		}
		// Not on the ICANN list: either an unknown TLD matched by the
		// default rule, or a private suffix to shorten.
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			return ""
		}
		s = suffix[i+1:]
	}
}

// networkLocation strips the scheme, path, query, fragment, userinfo, port
// and trailing dot from rawURL.
func networkLocation(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if i := strings.Index(s, "://"); i > 0 && isScheme(s[:i]) {
		s = s[i+3:]
	} else {
		s = strings.TrimPrefix(s, "//")
	}

	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		s = s[i+1:]
	}

	if strings.HasPrefix(s, "[") {
		if i := strings.IndexByte(s, ']'); i >= 0 {
			s = s[:i+1]
		}
	} else if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

// isScheme reports whether s is a valid RFC 3986 scheme.
func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}

// fallbackHostname returns the hostname net/url reports for rawURL, or ""
// when the URL does not parse or has no host.
func fallbackHostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// DeriveHost returns the host used by HasIP and CountSubdomains. It uses
// SplitHost and falls back to net/url when the split is rejected.
func DeriveHost(rawURL string) string {
	parts, err := SplitHost(rawURL)
	if err != nil {
		return fallbackHostname(rawURL)
	}
	return parts.Join()
}
