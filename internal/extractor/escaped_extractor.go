package extractor

import (
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
)

// EscapedExtractor finds anchors serialized inside script payloads, where the
// markup is JSON-escaped (href=\"https:\/\/...\") and invisible to a DOM parser.
type EscapedExtractor struct {
	filter  *LinkFilter
	pattern *regexp.Regexp
}

// NewEscapedExtractor creates a new escaped payload extractor
func NewEscapedExtractor(filter *LinkFilter) *EscapedExtractor {
	return &EscapedExtractor{
		filter:  filter,
		pattern: compileEscapedPattern(filter),
	}
}

// Extract implements Extractor
func (ee *EscapedExtractor) Extract(content string, base *url.URL) []models.Candidate {
	set := newCandidateSet()
	if ee.pattern == nil {
		return set.list()
	}

	for _, m := range ee.pattern.FindAllStringSubmatch(content, -1) {
		link := strings.ReplaceAll(m[1], `\/`, "/")
		link = strings.ReplaceAll(link, `\`, "")
		link = html.UnescapeString(link)

		location, ok := ee.filter.Canonicalize(link, base)
		if !ok {
			continue
		}

		label, ok := cleanLabel(html.UnescapeString(m[2]))
		if !ok {
			continue
		}

		set.add(location, label)
	}

	return set.list()
}

// compileEscapedPattern builds href=\"<scheme>:\/\/<host><prefix><rest>\"...>label
// where every slash may or may not be escaped.
func compileEscapedPattern(filter *LinkFilter) *regexp.Regexp {
	if len(filter.allowedHosts) == 0 {
		return nil
	}

	hosts := make([]string, 0, len(filter.allowedHosts))
	for host := range filter.allowedHosts {
		hosts = append(hosts, regexp.QuoteMeta(host))
	}
	// longest first so www.facebook.com wins over facebook.com
	sort.Slice(hosts, func(i, j int) bool {
		if len(hosts[i]) != len(hosts[j]) {
			return len(hosts[i]) > len(hosts[j])
		}
		return hosts[i] < hosts[j]
	})

	const slash = `(?:\\/|/)`
	parts := strings.Split(filter.pathPrefix, "/")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	prefix := strings.Join(parts, slash)

	expr := `(?i)href=\\"(https?:` + slash + slash + `(?:` + strings.Join(hosts, "|") + `)` +
		prefix + `(?:\\/|[^"\\\s>])+)\\"[^>]*>([^<]{2,140})`
	return regexp.MustCompile(expr)
}
