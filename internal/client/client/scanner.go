package client

import (
	"context"
)

// Analysis is the classifier response.
type Analysis struct {
	Result     string `json:"result"`
	Confidence string `json:"confidence"`
}

type ScannerClient interface {
	Analyze(ctx context.Context, message string) (*Analysis, error)
	// Explain returns "" when the explainer has nothing to say.
	Explain(ctx context.Context, message, label string) (string, error)
	ClassifierHealth(ctx context.Context) error
	ExplainerHealth(ctx context.Context) error
	ExplainerConfigured() bool
}
