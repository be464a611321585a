// ABOUTME: History ledger entry types for completed analyses and scrapes
// ABOUTME: Entries are append-only; the only mutation is clear-all

package models

import "time"

// EntryType classifies a history entry.
type EntryType string

const (
	EntryBatchAnalysis EntryType = "batch_analysis"
	EntryLinkScrape    EntryType = "link_scrape"
)

// HistoryEntry is one immutable row in the history ledger.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	Cost      float64   `json:"cost_inr"`
}
