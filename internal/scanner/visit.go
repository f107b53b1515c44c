package scanner

import (
	"context"
	"errors"
	"html"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
	"github.com/shivam1584818/fb-group-finder-backend/internal/renderer"
	"github.com/shivam1584818/fb-group-finder-backend/internal/urlhandler"
)

// SignalDetector decides whether rendered content carries the secondary signal.
type SignalDetector interface {
	Detect(content string) bool
}

// KeywordSignal reports the signal when every marker appears, ignoring case.
type KeywordSignal struct {
	markers []string
}

// NewKeywordSignal creates a detector for the given markers. Empty markers are ignored.
func NewKeywordSignal(markers []string) *KeywordSignal {
	ks := &KeywordSignal{}
	for _, m := range markers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			ks.markers = append(ks.markers, m)
		}
	}
	return ks
}

// Detect implements SignalDetector
func (ks *KeywordSignal) Detect(content string) bool {
	if len(ks.markers) == 0 {
		return false
	}
	lower := strings.ToLower(content)
	for _, m := range ks.markers {
		if !strings.Contains(lower, m) {
			return false
		}
	}
	return true
}

// Classify reports whether content references target, verbatim or in one of
// the encodings a page may carry it in.
func Classify(content, target string) bool {
	if target == "" {
		return false
	}
	for _, form := range targetForms(target) {
		if strings.Contains(content, form) {
			return true
		}
	}
	return false
}

func targetForms(target string) []string {
	forms := []string{target}
	for _, f := range []string{urlhandler.EncodeURI(target), url.QueryEscape(target), html.EscapeString(target)} {
		duplicate := false
		for _, existing := range forms {
			if existing == f {
				duplicate = true
				break
			}
		}
		if !duplicate {
			forms = append(forms, f)
		}
	}
	return forms
}

// Visitor renders one candidate and classifies it.
type Visitor struct {
	detector SignalDetector
	logger   zerolog.Logger
}

// NewVisitor creates a new visitor
func NewVisitor(detector SignalDetector, logger zerolog.Logger) *Visitor {
	return &Visitor{
		detector: detector,
		logger:   logger.With().Str("component", "Visitor").Logger(),
	}
}

// Visit never returns an error: render failures become an errored outcome.
func (v *Visitor) Visit(ctx context.Context, session renderer.Session, candidate models.Candidate, target string) models.VisitOutcome {
	content, err := session.Render(ctx, candidate.Location)
	if err != nil {
		v.logger.Warn().Err(err).Str("location", candidate.Location).Msg("Candidate visit failed")
		return models.NewErroredOutcome(candidate, failureReason(err))
	}

	outcome := models.VisitOutcome{
		Candidate:       candidate,
		Status:          models.VisitUnmatched,
		SecondarySignal: v.detector.Detect(content),
	}
	if Classify(content, target) {
		outcome.Status = models.VisitMatched
	}
	return outcome
}

// failureReason prefixes timeouts so that they can be told apart in failure lists.
func failureReason(err error) string {
	var fetchErr *renderer.FetchError
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &fetchErr) && fetchErr.Timeout()) {
		return "timeout: " + err.Error()
	}
	return err.Error()
}
