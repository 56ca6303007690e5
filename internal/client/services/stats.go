package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/common"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

// StatsService keeps the aggregate scan counters.
type StatsService interface {
	Load(ctx context.Context) models.ScanStats
	// Record counts one scan and persists the counters. Storage failures are
	// logged; the in-memory counters are still updated.
	Record(ctx context.Context, label models.Label) models.ScanStats
	Current() models.ScanStats
}

type statsService struct {
	store records.Store
	log   logging.Logger

	mu    sync.Mutex
	stats models.ScanStats
}

func NewStatsService(store records.Store, log logging.Logger) StatsService {
	return &statsService{store: store, log: log}
}

// decodeStats treats missing or malformed values as absent.
func decodeStats(raw []byte) (models.ScanStats, bool) {
	var s models.ScanStats
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return models.ScanStats{}, false
	}
	s.Sanitize()
	return s, true
}

func (s *statsService) Load(ctx context.Context) models.ScanStats {
	raw, err := s.store.Get(ctx, common.StatsKey)
	if err != nil {
		s.log.Warn(ctx, "failed to load stats", "error", err)
	}
	stats, ok := decodeStats(raw)
	if !ok && len(raw) > 0 {
		s.log.Warn(ctx, "discarding malformed stats record")
	}

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return stats
}

func (s *statsService) Record(ctx context.Context, label models.Label) models.ScanStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.stats
	err := s.store.InTx(ctx, func(ctx context.Context, repo records.Repository) error {
		raw, err := repo.Get(ctx, common.StatsKey)
		if err != nil {
			return err
		}
		if stored, ok := decodeStats(raw); ok {
			next = stored
		}
		next.Add(label)

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return repo.Put(ctx, common.StatsKey, data)
	})
	if err != nil {
		s.log.Error(ctx, "failed to save stats", "error", err)
		next = s.stats
		next.Add(label)
	}

	s.stats = next
	return next
}

func (s *statsService) Current() models.ScanStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
