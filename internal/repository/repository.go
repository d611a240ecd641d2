package repository

import (
	"context"
	"database/sql"
	"errors"

	"irrigation_panel/internal/models"
)

// Fixed storage keys of the persisted documents.
const (
	ConfigKey  = "irrigation_config"
	HistoryKey = "irrigation_history"
)

var (
	// ErrNotFound is returned when no document is stored under a key.
	ErrNotFound = errors.New("document not found")
	// ErrCorrupt is returned when a stored document cannot be decoded.
	ErrCorrupt = errors.New("stored document is corrupt")
)

// DocumentStore keeps whole JSON documents under fixed keys.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

type ConfigRepo interface {
	Load(ctx context.Context) (models.Config, error)
	Save(ctx context.Context, c models.Config) error
}

type HistoryRepo interface {
	Load(ctx context.Context) ([]models.HistoryEntry, error)
	Save(ctx context.Context, entries []models.HistoryEntry) error
}

type Repository struct {
	ConfigRepo  ConfigRepo
	HistoryRepo HistoryRepo
}

func NewRepository(db *sql.DB) *Repository {
	docs := NewDocumentSQLite(db)
	return &Repository{
		ConfigRepo:  NewConfigRepository(docs),
		HistoryRepo: NewHistoryRepository(docs),
	}
}
