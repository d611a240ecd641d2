package models

// Trigger types for history entries.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// HistoryEntry records one irrigation run.
type HistoryEntry struct {
	ID        int64  `json:"id"`        // unix milliseconds
	Timestamp string `json:"timestamp"` // RFC3339
	Type      string `json:"type"`      // manual | scheduled
	Duration  int    `json:"duration"`  // seconds
	Date      string `json:"date"`      // D/M/YYYY
	Time      string `json:"time"`      // HH:MM
}
