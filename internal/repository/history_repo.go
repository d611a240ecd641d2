package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"irrigation_panel/internal/models"
)

type HistoryRepository struct {
	docs DocumentStore
}

func NewHistoryRepository(docs DocumentStore) *HistoryRepository {
	return &HistoryRepository{docs: docs}
}

// Load decodes the stored history, newest first.
func (r *HistoryRepository) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, err := r.docs.Get(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, HistoryKey, err)
	}
	return entries, nil
}

func (r *HistoryRepository) Save(ctx context.Context, entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", HistoryKey, err)
	}
	return r.docs.Put(ctx, HistoryKey, raw)
}
