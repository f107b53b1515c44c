package extractor

import (
	"net/url"
	"strings"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/urlhandler"
)

// LinkFilter decides which links are candidates and maps each to a canonical location.
type LinkFilter struct {
	allowedHosts  map[string]struct{}
	pathPrefix    string
	excludedSlugs map[string]struct{}
}

// NewLinkFilter creates a new link filter
func NewLinkFilter(cfg config.ExtractorConfig) *LinkFilter {
	lf := &LinkFilter{
		allowedHosts:  make(map[string]struct{}, len(cfg.AllowedHosts)),
		pathPrefix:    cfg.PathPrefix,
		excludedSlugs: make(map[string]struct{}, len(cfg.ExcludedSlugs)),
	}
	if !strings.HasSuffix(lf.pathPrefix, "/") {
		lf.pathPrefix += "/"
	}
	for _, host := range cfg.AllowedHosts {
		lf.allowedHosts[strings.ToLower(host)] = struct{}{}
	}
	for _, slug := range cfg.ExcludedSlugs {
		lf.excludedSlugs[strings.ToLower(slug)] = struct{}{}
	}
	return lf
}

// Canonicalize resolves raw against base and returns scheme://host<prefix><slug>/.
// Query strings, fragments and deeper path segments are dropped so that every
// link into the same group collapses to one location.
func (lf *LinkFilter) Canonicalize(raw string, base *url.URL) (string, bool) {
	parsed, err := urlhandler.ResolveURL(raw, base)
	if err != nil || !urlhandler.IsHTTPScheme(parsed.Scheme) {
		return "", false
	}
	scheme := strings.ToLower(parsed.Scheme)

	host := strings.ToLower(parsed.Hostname())
	if _, ok := lf.allowedHosts[host]; !ok {
		return "", false
	}

	if !strings.HasPrefix(parsed.Path, lf.pathPrefix) {
		return "", false
	}

	slug, _, _ := strings.Cut(strings.TrimPrefix(parsed.Path, lf.pathPrefix), "/")
	if slug == "" {
		return "", false
	}
	if _, excluded := lf.excludedSlugs[strings.ToLower(slug)]; excluded {
		return "", false
	}

	return scheme + "://" + host + lf.pathPrefix + slug + "/", true
}
