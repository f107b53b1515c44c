package scanner

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/extractor"
	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
	"github.com/shivam1584818/fb-group-finder-backend/internal/renderer"
)

// Discoverer turns a target into a capped, ordered candidate list using the
// search surface. It renders at most twice per call.
type Discoverer struct {
	searchURLTemplate string
	extractor         extractor.Extractor
	limit             int
	logger            zerolog.Logger
}

// NewDiscoverer creates a new discoverer. limit caps the returned candidates.
func NewDiscoverer(searchURLTemplate string, limit int, ex extractor.Extractor, logger zerolog.Logger) *Discoverer {
	return &Discoverer{
		searchURLTemplate: searchURLTemplate,
		extractor:         ex,
		limit:             limit,
		logger:            logger.With().Str("component", "Discoverer").Logger(),
	}
}

// SearchURL places query into the search template.
func (d *Discoverer) SearchURL(query string) string {
	if strings.Contains(d.searchURLTemplate, "%s") {
		return strings.Replace(d.searchURLTemplate, "%s", url.QueryEscape(query), 1)
	}
	return d.searchURLTemplate + url.QueryEscape(query)
}

// Discover searches for the verbatim target and, when that yields nothing,
// for its last path segment. A failed primary search still falls through to
// the fallback; a failure of the search whose result would be returned is an
// ErrDiscoveryFailure. Zero candidates after both searches is not an error.
func (d *Discoverer) Discover(ctx context.Context, session renderer.Session, target string) ([]models.Candidate, error) {
	candidates, primaryErr := d.search(ctx, session, target)
	if primaryErr == nil && len(candidates) > 0 {
		return d.truncate(candidates), nil
	}

	if primaryErr != nil {
		d.logger.Warn().Err(primaryErr).Str("query", target).Msg("Primary search failed, trying fallback")
	}

	fallback := FallbackQuery(target)
	// Only direct Discoverer callers reach this; Scan rejects slash-free targets.
	if fallback == target {
		if primaryErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailure, primaryErr)
		}
		return []models.Candidate{}, nil
	}

	d.logger.Debug().Str("query", fallback).Msg("Primary search returned no candidates, using fallback query")

	candidates, err := d.search(ctx, session, fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailure, err)
	}
	return d.truncate(candidates), nil
}

func (d *Discoverer) search(ctx context.Context, session renderer.Session, query string) ([]models.Candidate, error) {
	searchURL := d.SearchURL(query)

	content, err := session.Render(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(searchURL)
	candidates := d.extractor.Extract(content, base)

	d.logger.Debug().
		Str("query", query).
		Int("candidates", len(candidates)).
		Msg("Search page extracted")

	return candidates, nil
}

func (d *Discoverer) truncate(candidates []models.Candidate) []models.Candidate {
	if d.limit > 0 && len(candidates) > d.limit {
		return candidates[:d.limit]
	}
	return candidates
}
