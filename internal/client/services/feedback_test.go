package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/common"
)

func TestFeedback_SubmitStoresRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	s := NewFeedbackService(store, nopLog())

	fb, err := s.Submit(ctx, "false-positive", "  my bank's real email was flagged  ", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackFalsePositive, fb.Kind)
	assert.Equal(t, "my bank's real email was flagged", fb.Message)
	assert.NotEmpty(t, fb.ID)

	raw, err := store.Get(ctx, common.FeedbackPrefix+fb.ID)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"type":"false-positive"`))
}

func TestFeedback_EmptyRejected(t *testing.T) {
	s := NewFeedbackService(newTestStore(t), nopLog())
	_, err := s.Submit(context.Background(), "bug", "   ", "")
	require.ErrorIs(t, err, ErrEmptyFeedback)
}

func TestFeedback_UnknownKindIsGeneral(t *testing.T) {
	s := NewFeedbackService(newTestStore(t), nopLog())
	fb, err := s.Submit(context.Background(), "complaint", "hi", "")
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackGeneral, fb.Kind)
}

func TestFeedback_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	s := NewFeedbackService(store, nopLog()).(*feedbackService)

	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	for i, msg := range []string{"first", "second"} {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		_, err := s.Submit(ctx, "general", msg, "")
		require.NoError(t, err)
	}
	require.NoError(t, store.Put(ctx, common.FeedbackPrefix+"broken", []byte("{")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
}
