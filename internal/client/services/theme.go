package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/common"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

type ThemeService interface {
	Load(ctx context.Context) models.Theme
	Toggle(ctx context.Context) (models.Theme, error)
	Current() models.Theme
}

type themeService struct {
	store records.Repository
	log   logging.Logger

	mu    sync.Mutex
	theme models.Theme
}

func NewThemeService(store records.Repository, log logging.Logger) ThemeService {
	return &themeService{store: store, log: log, theme: models.ThemeDark}
}

func (s *themeService) Load(ctx context.Context) models.Theme {
	raw, err := s.store.Get(ctx, common.ThemeKey)
	if err != nil {
		s.log.Warn(ctx, "failed to load theme", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = models.ParseTheme(string(raw))
	return s.theme
}

// Toggle switches the theme. The new theme applies even if it cannot be saved.
func (s *themeService) Toggle(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	s.theme = s.theme.Toggled()
	t := s.theme
	s.mu.Unlock()

	if err := s.store.Put(ctx, common.ThemeKey, []byte(t)); err != nil {
		s.log.Error(ctx, "failed to save theme", "error", err)
		return t, err
	}
	return t, nil
}

func (s *themeService) Current() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}
