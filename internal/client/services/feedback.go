package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/common"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

type FeedbackService interface {
	Submit(ctx context.Context, kind, message, email string) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

type feedbackService struct {
	store records.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewFeedbackService(store records.Repository, log logging.Logger) FeedbackService {
	return &feedbackService{store: store, log: log, now: time.Now}
}

func (s *feedbackService) Submit(ctx context.Context, kind, message, email string) (*models.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyFeedback
	}

	fb := &models.Feedback{
		ID:          uuid.NewString(),
		Kind:        models.ParseFeedbackKind(strings.TrimSpace(kind)),
		Message:     message,
		Email:       email,
		SubmittedAt: s.now().UTC(),
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, common.FeedbackPrefix+fb.ID, data); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "feedback submitted", "id", fb.ID, "type", fb.Kind, "length", len(message))
	return fb, nil
}

// List returns stored feedback, oldest first. Malformed records are skipped.
func (s *feedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := s.store.List(ctx, common.FeedbackPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]models.Feedback, 0, len(rows))
	for key, raw := range rows {
		var fb models.Feedback
		if err := json.Unmarshal(raw, &fb); err != nil {
			s.log.Debug(ctx, "skipping malformed feedback", "key", key, "error", err)
			continue
		}
		out = append(out, fb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}
