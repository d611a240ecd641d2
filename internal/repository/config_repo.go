package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"irrigation_panel/internal/models"
)

type ConfigRepository struct {
	docs DocumentStore
}

func NewConfigRepository(docs DocumentStore) *ConfigRepository {
	return &ConfigRepository{docs: docs}
}

// Load decodes the stored configuration. Missing documents yield ErrNotFound,
// undecodable ones ErrCorrupt.
func (r *ConfigRepository) Load(ctx context.Context) (models.Config, error) {
	raw, err := r.docs.Get(ctx, ConfigKey)
	if err != nil {
		return models.Config{}, err
	}
	var c models.Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.Config{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, ConfigKey, err)
	}
	return c, nil
}

// Save rewrites the whole configuration document.
func (r *ConfigRepository) Save(ctx context.Context, c models.Config) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ConfigKey, err)
	}
	return r.docs.Put(ctx, ConfigKey, raw)
}
