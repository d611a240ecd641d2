package service

import (
	"sync"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/models"

	"github.com/google/uuid"
)

// MaxLogEntries bounds the in-session activity log.
const MaxLogEntries = 100

// Journal is the in-memory activity log shown to the user, newest first.
type Journal struct {
	log *logger.Logger
	now func() time.Time

	mu      sync.Mutex
	entries []models.LogEntry
	unread  int
}

func NewJournal(log *logger.Logger) *Journal {
	return &Journal{log: log, now: time.Now}
}

// Log prepends an entry, evicting the oldest one beyond MaxLogEntries.
func (j *Journal) Log(severity, message string) models.LogEntry {
	e := models.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: j.now().Format("15:04:05"),
		Message:   message,
		Type:      severity,
	}

	j.mu.Lock()
	j.entries = append([]models.LogEntry{e}, j.entries...)
	if len(j.entries) > MaxLogEntries {
		j.entries = j.entries[:MaxLogEntries]
	}
	j.unread++
	j.mu.Unlock()

	if j.log != nil {
		j.log.Debugw("journal", "type", severity, "message", message)
	}
	return e
}

func (j *Journal) Info(message string) models.LogEntry { return j.Log(models.SeverityInfo, message) }
func (j *Journal) Success(message string) models.LogEntry {
	return j.Log(models.SeveritySuccess, message)
}
func (j *Journal) Error(message string) models.LogEntry { return j.Log(models.SeverityError, message) }

// Entries returns a copy of the log, newest first.
func (j *Journal) Entries() []models.LogEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]models.LogEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Clear drops every entry and records that the log was cleared.
func (j *Journal) Clear() {
	j.mu.Lock()
	j.entries = nil
	j.unread = 0
	j.mu.Unlock()
	j.Info("Logs cleared")
}

func (j *Journal) Unread() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.unread
}

func (j *Journal) MarkRead() {
	j.mu.Lock()
	j.unread = 0
	j.mu.Unlock()
}
