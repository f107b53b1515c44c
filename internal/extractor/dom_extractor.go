package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
)

// DOMExtractor reads candidates from anchor elements.
type DOMExtractor struct {
	filter *LinkFilter
}

// NewDOMExtractor creates a new DOM extractor
func NewDOMExtractor(filter *LinkFilter) *DOMExtractor {
	return &DOMExtractor{filter: filter}
}

// Extract implements Extractor. Anchors without usable text are skipped so a
// later anchor with a name can still claim the location.
func (de *DOMExtractor) Extract(html string, base *url.URL) []models.Candidate {
	set := newCandidateSet()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return set.list()
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		location, ok := de.filter.Canonicalize(href, base)
		if !ok {
			return
		}

		label, ok := cleanLabel(s.Text())
		if !ok {
			aria, _ := s.Attr("aria-label")
			if label, ok = cleanLabel(aria); !ok {
				return
			}
		}

		set.add(location, label)
	})

	return set.list()
}
