package models

// ScanStats holds the aggregate counters persisted under surLinkStats.
type ScanStats struct {
	TotalScans    int `json:"totalScans"`
	PhishingScans int `json:"phishingScans"`
	SafeScans     int `json:"safeScans"`
}

// Add counts one completed scan with the given label.
func (s *ScanStats) Add(label Label) {
	s.TotalScans++
	if label.IsPhishing() {
		s.PhishingScans++
	} else {
		s.SafeScans++
	}
}

// Sanitize clamps negative counters read from storage to zero and makes
// TotalScans the sum of the label counters.
func (s *ScanStats) Sanitize() {
	if s.PhishingScans < 0 {
		s.PhishingScans = 0
	}
	if s.SafeScans < 0 {
		s.SafeScans = 0
	}
	s.TotalScans = s.PhishingScans + s.SafeScans
}
