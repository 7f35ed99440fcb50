// Package urlutil validates and normalises the URLs accepted for shortening.
package urlutil

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ErrNotAbsolute is returned by ParseLocation when the value parses but has no scheme or host.
var ErrNotAbsolute = errors.New("url is not absolute")

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ftp":   "21",
}

// IsValid reports whether s is an absolute http, https or ftp URL whose host is
// an IPv4 address or a domain name ending in a known top-level domain.
func IsValid(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return false
	}

	if u.Opaque != "" || u.Host == "" {
		return false
	}

	host := u.Hostname()
	if host == "" || !utf8.ValidString(host) {
		return false
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Is4()
	}

	return hasKnownTLD(host)
}

// hasKnownTLD also requires the punycode form of host to be stable, so the
// host Sanitise writes passes this check too.
func hasKnownTLD(host string) bool {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(host, "."))
	if err != nil || !isASCII(ascii) {
		return false
	}

	if again, err := idna.Lookup.ToASCII(ascii); err != nil || again != ascii {
		return false
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}

	tld := labels[len(labels)-1]
	suffix, icann := publicsuffix.PublicSuffix(tld)

	return icann && suffix == tld
}

// Sanitise returns the canonical form of s used for storage and lookup.
//
// Surrounding whitespace is trimmed. When s has an authority, the scheme and
// host are lowercased, IDN hosts are converted to punycode, the scheme's
// default port is dropped and a lone "/" path is removed. The remainder of the
// URL is kept byte for byte. Sanitise is idempotent: when the normalised form
// would itself normalise differently, the trimmed input is returned instead.
func Sanitise(s string) string {
	s = strings.TrimSpace(s)

	out := normalise(s)
	if strings.TrimSpace(out) != out || normalise(out) != out {
		return s
	}

	return out
}

func normalise(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}

	sep := strings.Index(s, "://")
	if sep != len(u.Scheme) {
		return s
	}

	scheme := strings.ToLower(s[:sep])
	rest := s[sep+3:]

	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority, tail := rest[:end], rest[end:]

	userinfo, hostport := "", authority
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		userinfo, hostport = authority[:at+1], authority[at+1:]
	}

	if tail == "/" {
		tail = ""
	}

	return scheme + "://" + userinfo + normaliseHostPort(scheme, hostport, u.Hostname()) + tail
}

// normaliseHostPort works on the raw host bytes of the authority. Only a
// plain domain or IPv4 host is rewritten from hostname, the unescaped form.
func normaliseHostPort(scheme, hostport, hostname string) string {
	host, port, hasPort := splitHostPort(hostport)

	switch {
	case strings.HasPrefix(host, "["):
		host = asciiLower(host)
	case strings.Contains(host, ":"):
		// Not an IP literal; dropping the last ":port" would change how it parses.
		return asciiLower(hostport)
	default:
		host = asciiLower(host)
		if !utf8.ValidString(hostname) {
			break
		}
		if ascii, err := idna.Lookup.ToASCII(asciiLower(hostname)); err == nil && ascii != "" && isASCII(ascii) {
			host = ascii
		}
	}

	if !hasPort || port == "" || defaultPorts[scheme] == port {
		return host
	}

	return host + ":" + port
}

// splitHostPort splits the raw authority host the same way net/url does: a
// bracketed literal ends at the last "]", otherwise the port follows the last ":".
func splitHostPort(hostport string) (host, port string, hasPort bool) {
	if strings.HasPrefix(hostport, "[") {
		i := strings.LastIndex(hostport, "]")
		if i < 0 {
			return hostport, "", false
		}

		host = hostport[:i+1]
		rest := hostport[i+1:]
		if !strings.HasPrefix(rest, ":") {
			return host, "", false
		}

		return host, rest[1:], true
	}

	i := strings.LastIndex(hostport, ":")
	if i < 0 {
		return hostport, "", false
	}

	return hostport[:i], hostport[i+1:], true
}

// asciiLower lowercases A-Z only and leaves every other byte untouched, so
// percent escapes and non-UTF-8 bytes survive unchanged.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// ParseLocation parses a stored URL into a redirect location. It fails when the
// value does not parse or is not absolute.
func ParseLocation(s string) (*url.URL, error) {
	const op = "urlutil.ParseLocation"

	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse url: %w", op, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAbsolute)
	}

	return u, nil
}
