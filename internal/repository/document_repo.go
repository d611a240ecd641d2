package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type DocumentSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewDocumentSQLite(db *sql.DB) *DocumentSQLite {
	return &DocumentSQLite{db: db, now: time.Now}
}

const (
	upsertDocumentSQL = `
		INSERT INTO documents (key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body=excluded.body,
			updated_at=excluded.updated_at
	`

	selectDocumentSQL = `SELECT body FROM documents WHERE key=?`
)

// Get returns the raw document stored under key, or ErrNotFound.
func (r *DocumentSQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var body string
	if err := r.db.QueryRowContext(ctx, selectDocumentSQL, key).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(body), nil
}

// Put replaces the document stored under key.
func (r *DocumentSQLite) Put(ctx context.Context, key string, body []byte) error {
	_, err := r.db.ExecContext(ctx, upsertDocumentSQL, key, string(body), r.now().UTC())
	return err
}
