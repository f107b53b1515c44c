// Package scanner finds which candidate pages reference a target URL.
//
// A scan opens one renderer session, discovers candidates through the search
// surface, visits them under a fixed concurrency ceiling and aggregates the
// matches in discovery order. The whole scan runs under one deadline; visits
// that do not finish in time are reported as errored and the partial result
// is still returned.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/common/batchprocessor"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/extractor"
	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
	"github.com/shivam1584818/fb-group-finder-backend/internal/renderer"
)

// Scanner orchestrates discovery, visits and aggregation for one target.
type Scanner struct {
	config     config.ScanConfig
	gateway    renderer.Gateway
	discoverer *Discoverer
	visitor    *Visitor
	processor  *batchprocessor.BatchProcessor
	logger     zerolog.Logger
}

// NewScanner creates a new Scanner with the keyword signal detector from cfg.
func NewScanner(cfg config.ScanConfig, gateway renderer.Gateway, ex extractor.Extractor, logger zerolog.Logger) *Scanner {
	moduleLogger := logger.With().Str("module", "Scanner").Logger()

	return &Scanner{
		config:     cfg,
		gateway:    gateway,
		discoverer: NewDiscoverer(cfg.SearchURLTemplate, cfg.ScanLimit, ex, moduleLogger),
		visitor:    NewVisitor(NewKeywordSignal(cfg.SignalMarkers), moduleLogger),
		processor: batchprocessor.NewBatchProcessor(batchprocessor.BatchProcessorConfig{
			MaxConcurrent: cfg.MaxConcurrency,
			TaskTimeout:   cfg.VisitTimeout,
		}, moduleLogger),
		logger: moduleLogger,
	}
}

// WithSignalDetector replaces the secondary signal heuristic.
func (s *Scanner) WithSignalDetector(detector SignalDetector) *Scanner {
	s.visitor = NewVisitor(detector, s.logger)
	return s
}

// Scan runs one complete scan. It fails with ErrInvalidInput, ErrAuthFailure
// or ErrDiscoveryFailure; once visits start, it always returns a result.
func (s *Scanner) Scan(ctx context.Context, target string) (*models.ScanResult, error) {
	target = strings.TrimSpace(target)
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}

	startTime := time.Now()
	scanLogger := s.logger.With().Str("target", target).Logger()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	session, err := s.gateway.Open(ctx)
	if err != nil {
		if errors.Is(err, renderer.ErrSignIn) {
			return nil, fmt.Errorf("%w: %w", ErrAuthFailure, err)
		}
		return nil, common.WrapError(err, "failed to open renderer session")
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			scanLogger.Warn().Err(closeErr).Msg("Failed to close renderer session")
		}
	}()

	candidates, err := s.discoverer.Discover(ctx, session, target)
	if err != nil {
		scanLogger.Error().Err(err).Msg("Discovery failed")
		return nil, err
	}

	scanLogger.Info().Int("candidates", len(candidates)).Msg("Discovery completed, visiting candidates")

	outcomes := s.visitAll(ctx, session, candidates, target)
	result := Aggregate(outcomes)

	scanLogger.Info().
		Int("candidates", len(candidates)).
		Int("matched", result.MatchCount()).
		Int("errored", result.ErroredCount()).
		Int("scanned", result.TotalVisited).
		Dur("duration", time.Since(startTime)).
		Msg("Scan completed")

	if !s.config.ExposeFailures {
		result.Failures = nil
	}
	return &result, nil
}

func (s *Scanner) visitAll(ctx context.Context, session renderer.Session, candidates []models.Candidate, target string) []models.VisitOutcome {
	tasks := make([]batchprocessor.Task[models.VisitOutcome], len(candidates))
	for i, candidate := range candidates {
		tasks[i] = func(taskCtx context.Context) (models.VisitOutcome, error) {
			return s.visitor.Visit(taskCtx, session, candidate, target), nil
		}
	}

	results := batchprocessor.Process(ctx, s.processor, tasks)

	outcomes := make([]models.VisitOutcome, len(results))
	for i, r := range results {
		if r.Err != nil {
			outcomes[i] = models.NewErroredOutcome(candidates[i], failureReason(r.Err))
			continue
		}
		outcomes[i] = r.Value
	}
	return outcomes
}
