package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"irrigation_panel/internal/logger"
	"irrigation_panel/internal/metrics"
	"irrigation_panel/internal/models"
	"irrigation_panel/internal/repository"
)

// MaxHistoryEntries bounds the persisted irrigation history.
const MaxHistoryEntries = 10

const (
	historyDateLayout = "2/1/2006"
	historyTimeLayout = "15:04"
)

type HistoryService struct {
	repo    repository.HistoryRepo
	journal *Journal
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries []models.HistoryEntry
}

func NewHistoryService(repo repository.HistoryRepo, journal *Journal, m *metrics.Metrics, log *logger.Logger) *HistoryService {
	return &HistoryService{repo: repo, journal: journal, metrics: m, log: log, now: time.Now}
}

// Load reads the stored history once. A corrupt document leaves the history
// empty and is reported in the journal.
func (s *HistoryService) Load(ctx context.Context) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.journal.Error("Failed to load history: " + err.Error())
			if s.log != nil {
				s.log.Errorw("history_load_failed", "err", err)
			}
		}
		entries = nil
	}
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.metrics.HistorySize(len(entries))
}

// Record prepends a run, evicts beyond MaxHistoryEntries and rewrites the stored document.
func (s *HistoryService) Record(ctx context.Context, trigger string, duration int) (models.HistoryEntry, error) {
	now := s.now()
	e := models.HistoryEntry{
		ID:        now.UnixMilli(),
		Timestamp: now.UTC().Format(time.RFC3339),
		Type:      trigger,
		Duration:  duration,
		Date:      now.Format(historyDateLayout),
		Time:      now.Format(historyTimeLayout),
	}

	s.mu.Lock()
	s.entries = append([]models.HistoryEntry{e}, s.entries...)
	if len(s.entries) > MaxHistoryEntries {
		s.entries = s.entries[:MaxHistoryEntries]
	}
	snapshot := make([]models.HistoryEntry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	s.metrics.HistorySize(len(snapshot))
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.journal.Error("Failed to save history: " + err.Error())
		if s.log != nil {
			s.log.Errorw("history_save_failed", "err", err)
		}
		return e, err
	}
	return e, nil
}

// List returns the history, newest first.
func (s *HistoryService) List() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Activity counts today's runs per hour of the day, in now's location.
func (s *HistoryService) Activity(now time.Time) []int {
	buckets := make([]int, 24)
	today := now.Format(historyDateLayout)
	for _, e := range s.List() {
		if e.Date != today {
			continue
		}
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			continue
		}
		buckets[ts.In(now.Location()).Hour()]++
	}
	return buckets
}
