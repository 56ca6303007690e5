package cli

import (
	"context"
	"fmt"
)

func (a *App) History(_ context.Context) error {
	a.println(a.renderer.History(a.history.Entries()))
	return nil
}

func (a *App) Stats(_ context.Context) error {
	a.println(a.renderer.Stats(a.stats.Current(), a.quiz.Best()))
	return nil
}

// Status probes both services now instead of waiting for the next tick.
func (a *App) Status(ctx context.Context) error {
	a.println(a.renderer.Status(a.poller.Check(ctx)))
	return nil
}

// Theme switches between dark and light. A failed save keeps the new theme
// for this session.
func (a *App) Theme(ctx context.Context) error {
	if _, err := a.theme.Toggle(ctx); err != nil {
		a.log.Warn(ctx, "theme not saved", "error", err)
	}
	t := a.theme.Current()
	a.renderer.SetTheme(t)
	a.println(fmt.Sprintf("Theme: %s", t))
	return nil
}
