package models

import "time"

type FeedbackKind string

const (
	FeedbackGeneral       FeedbackKind = "general"
	FeedbackBug           FeedbackKind = "bug"
	FeedbackSuggestion    FeedbackKind = "suggestion"
	FeedbackFalsePositive FeedbackKind = "false-positive"
	FeedbackFalseNegative FeedbackKind = "false-negative"
)

// FeedbackKinds lists the accepted kinds in display order.
var FeedbackKinds = []FeedbackKind{
	FeedbackGeneral, FeedbackBug, FeedbackSuggestion, FeedbackFalsePositive, FeedbackFalseNegative,
}

// ParseFeedbackKind falls back to FeedbackGeneral for unknown values.
func ParseFeedbackKind(s string) FeedbackKind {
	for _, k := range FeedbackKinds {
		if string(k) == s {
			return k
		}
	}
	return FeedbackGeneral
}

type Feedback struct {
	ID          string       `json:"id"`
	Kind        FeedbackKind `json:"type"`
	Message     string       `json:"message"`
	Email       string       `json:"email,omitempty"`
	SubmittedAt time.Time    `json:"submittedAt"`
}
