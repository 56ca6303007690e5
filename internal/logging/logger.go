// Package logging is the structured logger used by every client layer.
// Messages carry a context and key/value attributes; the only backend is slog.
package logging

import "context"

// Logger takes attributes as alternating keys and values:
//
//	log.Info(ctx, "scan finished", "label", label, "confidence", confidence)
type Logger interface {
	// Debug records are dropped unless verbose output was requested.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for failures the client recovers from, such as a probe timeout.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}
