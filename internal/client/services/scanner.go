package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/surlink/internal/client/client"
	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

// ScanHooks lets the view react to a scan that has passed validation.
// Started runs before the classifier is called, Finished after the last
// remote call returns and before Scan does.
type ScanHooks struct {
	Started  func(message string)
	Finished func()
}

// Scanner runs the scan lifecycle: classify, optionally explain, then record
// history and stats. Only one scan runs at a time.
type Scanner struct {
	client  client.ScannerClient
	stats   StatsService
	history *History
	log     logging.Logger
	timeout time.Duration
	hooks   ScanHooks
	now     func() time.Time

	inFlight atomic.Bool
}

func NewScanner(c client.ScannerClient, stats StatsService, history *History, log logging.Logger, timeout time.Duration) *Scanner {
	return &Scanner{
		client:  c,
		stats:   stats,
		history: history,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// SetHooks must be called before the first Scan.
func (s *Scanner) SetHooks(h ScanHooks) {
	s.hooks = h
}

func (s *Scanner) InFlight() bool {
	return s.inFlight.Load()
}

// Scan classifies message. It returns ErrScanInProgress while another scan
// runs, ErrEmptyMessage for blank input and ErrConnection when the classifier
// cannot be reached or answers with an error. On failure stats and history
// are left untouched.
func (s *Scanner) Scan(ctx context.Context, message string) (*models.ScanResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer s.inFlight.Store(false)

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if s.hooks.Started != nil {
		s.hooks.Started(message)
	}
	if s.hooks.Finished != nil {
		defer s.hooks.Finished()
	}

	analysis, err := s.analyze(ctx, message)
	if err != nil {
		s.log.Warn(ctx, "scan failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	result := &models.ScanResult{
		Result:     analysis.Result,
		Label:      models.ParseLabel(analysis.Result),
		Confidence: analysis.Confidence,
		Message:    message,
		ScannedAt:  s.now(),
	}
	result.Explanation = s.explain(ctx, message, analysis.Result)

	s.history.Add(models.NewHistoryEntry(*result))
	s.stats.Record(ctx, result.Label)

	s.log.Info(ctx, "scan finished", "label", result.Label, "confidence", result.Confidence,
		"explained", result.HasExplanation())
	return result, nil
}

func (s *Scanner) analyze(ctx context.Context, message string) (*client.Analysis, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.client.Analyze(ctx, message)
}

// explain never fails the scan; any error yields no explanation.
func (s *Scanner) explain(ctx context.Context, message, label string) string {
	if !s.client.ExplainerConfigured() {
		return ""
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.client.Explain(ctx, message, label)
	if err != nil {
		if !errors.Is(err, client.ErrNotConfigured) {
			s.log.Debug(ctx, "explanation unavailable", "error", err)
		}
		return ""
	}
	return strings.TrimSpace(text)
}

func (s *Scanner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
