package services

import (
	"sync"

	"github.com/dmitrijs2005/surlink/internal/client/models"
)

// HistoryLimit is the maximum number of entries kept.
const HistoryLimit = 10

// History is the in-memory list of recent scans, newest first.
type History struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Add(e models.HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]models.HistoryEntry{e}, h.entries...)
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[:HistoryLimit]
	}
}

// Entries returns a copy of the history, newest first.
func (h *History) Entries() []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
