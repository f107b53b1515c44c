// Package extractor pulls candidate group links out of rendered search pages.
//
// Every Extractor returns an ordered, deduplicated set: a location appears at
// most once and keeps the label it was first seen with. The scan relies on
// that order to report matches in discovery order.
package extractor

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
)

// Label length bounds, in runes
const (
	minLabelLength = 2
	maxLabelLength = 140
)

// Extractor turns HTML into candidates. base resolves relative links and may be nil.
type Extractor interface {
	Extract(html string, base *url.URL) []models.Candidate
}

// New returns the default extractor: DOM anchors first, then links embedded in
// escaped script payloads.
func New(cfg config.ExtractorConfig) Extractor {
	filter := NewLinkFilter(cfg)
	return NewChain(NewDOMExtractor(filter), NewEscapedExtractor(filter))
}

// Chain runs extractors in order and merges their output, first-seen wins.
type Chain struct {
	extractors []Extractor
}

// NewChain creates a new extractor chain
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Extract implements Extractor
func (c *Chain) Extract(html string, base *url.URL) []models.Candidate {
	set := newCandidateSet()
	for _, e := range c.extractors {
		for _, candidate := range e.Extract(html, base) {
			set.add(candidate.Location, candidate.Label)
		}
	}
	return set.list()
}

// candidateSet keeps insertion order and rejects repeated locations
type candidateSet struct {
	seen  map[string]struct{}
	items []models.Candidate
}

func newCandidateSet() *candidateSet {
	return &candidateSet{seen: make(map[string]struct{})}
}

func (cs *candidateSet) add(location, label string) {
	if _, exists := cs.seen[location]; exists {
		return
	}
	cs.seen[location] = struct{}{}
	cs.items = append(cs.items, models.Candidate{Location: location, Label: label})
}

func (cs *candidateSet) list() []models.Candidate {
	if cs.items == nil {
		return []models.Candidate{}
	}
	return cs.items
}

// cleanLabel collapses whitespace and enforces the length bounds.
// ok is false when too little text remains to name a candidate.
func cleanLabel(raw string) (string, bool) {
	label := strings.Join(strings.Fields(raw), " ")
	if utf8.RuneCountInString(label) < minLabelLength {
		return "", false
	}
	if utf8.RuneCountInString(label) > maxLabelLength {
		label = strings.TrimSpace(string([]rune(label)[:maxLabelLength]))
	}
	return label, true
}
