// Package models defines client-side data models used by the SurLink CLI.
package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Label is the verdict returned by the classification API.
type Label string

const (
	LabelPhishing Label = "Phishing"
	LabelSafe     Label = "Safe"
)

// ParseLabel maps a raw API result to a Label. Anything mentioning
// "phishing" in any case is phishing; every other value counts as safe.
func ParseLabel(raw string) Label {
	if strings.Contains(strings.ToLower(raw), "phishing") {
		return LabelPhishing
	}
	return LabelSafe
}

func (l Label) IsPhishing() bool {
	return l == LabelPhishing
}

// ScanResult is one classification response, optionally with an explanation.
type ScanResult struct {
	// Result is the raw result string as returned by the API.
	Result string
	Label  Label
	// Confidence is kept verbatim, e.g. "97.3%".
	Confidence  string
	Explanation string
	Message     string
	ScannedAt   time.Time
}

// HasExplanation reports whether a non-blank explanation is attached.
func (r ScanResult) HasExplanation() bool {
	return strings.TrimSpace(r.Explanation) != ""
}

// HistoryPreviewLen is the number of characters kept in a history entry.
const HistoryPreviewLen = 50

// HistoryEntry is the truncated record of a past scan.
type HistoryEntry struct {
	Label            Label
	TruncatedMessage string
	Timestamp        time.Time
}

// NewHistoryEntry builds an entry from a finished scan.
func NewHistoryEntry(r ScanResult) HistoryEntry {
	return HistoryEntry{
		Label:            r.Label,
		TruncatedMessage: Truncate(r.Message, HistoryPreviewLen),
		Timestamp:        r.ScannedAt,
	}
}

// Truncate cuts s to n runes and appends "..." when something was cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
