// Package urlhandler holds the URL parsing rules shared by request validation
// and link extraction.
package urlhandler

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateHTTPURL parses rawURL and requires an absolute http(s) URL with a host.
func ValidateHTTPURL(rawURL string) (*url.URL, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return nil, ErrEmptyURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}
	if !parsedURL.IsAbs() || parsedURL.Host == "" {
		return nil, ErrRelativeURL
	}
	if !IsHTTPScheme(parsedURL.Scheme) {
		return nil, ErrUnsupportedScheme
	}

	return parsedURL, nil
}

// ResolveURL resolves a (possibly relative) href against base. With a nil base
// the href must already be absolute.
func ResolveURL(href string, base *url.URL) (*url.URL, error) {
	trimmedHref := strings.TrimSpace(href)
	if trimmedHref == "" {
		return nil, ErrEmptyURL
	}

	parsedHref, err := url.Parse(trimmedHref)
	if err != nil {
		return nil, fmt.Errorf("error parsing href '%s': %w", trimmedHref, err)
	}

	if base == nil {
		if !parsedHref.IsAbs() {
			return nil, ErrRelativeURL
		}
		return parsedHref, nil
	}

	return base.ResolveReference(parsedHref), nil
}

// IsHTTPScheme reports whether scheme is http or https, ignoring case.
func IsHTTPScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	return scheme == "http" || scheme == "https"
}

const encodeURIKept = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

// EncodeURI percent-encodes s the way browsers serialize a full URI: reserved
// and unreserved characters are kept, every other byte becomes %XX.
func EncodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(encodeURIKept, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
