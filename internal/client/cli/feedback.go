package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/surlink/internal/client/models"
)

func feedbackKindPrompt() string {
	kinds := make([]string, len(models.FeedbackKinds))
	for i, k := range models.FeedbackKinds {
		kinds[i] = string(k)
	}
	return fmt.Sprintf("Feedback type (%s) [general]", strings.Join(kinds, ", "))
}

// Feedback records a note from the user, tagged with their email when logged
// in. "feedback list" shows what was submitted from this store.
func (a *App) Feedback(ctx context.Context, sub string) error {
	switch strings.ToLower(sub) {
	case "":
	case "list":
		return a.listFeedback(ctx)
	default:
		a.println("Unknown feedback command:", sub)
		return nil
	}

	kind, err := GetSimpleText(a.reader, feedbackKindPrompt(), a.out)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Your feedback", a.out)
	if err != nil {
		return err
	}

	var email string
	if u, err := a.auth.Current(ctx); err == nil {
		email = u.Email
	}

	if _, err := a.feedback.Submit(ctx, kind, message, email); err != nil {
		return err
	}
	a.println("Thank you! Your feedback has been sent.")
	return nil
}

func (a *App) listFeedback(ctx context.Context) error {
	items, err := a.feedback.List(ctx)
	if err != nil {
		return err
	}
	a.println(a.renderer.FeedbackList(items))
	return nil
}
