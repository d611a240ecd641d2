package models

import "time"

// Severities shared by log entries and notifications.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// LogEntry is a single line of the in-session activity log.
type LogEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"` // HH:MM:SS
	Message   string `json:"message"`
	Type      string `json:"type"` // info | success | error
}

// Notification is a transient, user-facing message.
type Notification struct {
	Message string    `json:"message"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
}
