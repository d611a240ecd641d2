package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*DocumentSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewDocumentSQLite(db), mock
}

func TestDocumentSQLite_Put_UpsertsWithUTCTimestamp(t *testing.T) {
	store, mock := newMockStore(t)
	local := time.Date(2026, 10, 15, 8, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	store.now = func() time.Time { return local }

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (key, body, updated_at)")).
		WithArgs(ConfigKey, `{"esp32_ip":"10.0.0.5"}`, local.UTC()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Put(context.Background(), ConfigKey, []byte(`{"esp32_ip":"10.0.0.5"}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocumentSQLite_Put_PropagatesError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("disk full")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).WillReturnError(boom)

	if err := store.Put(context.Background(), HistoryKey, []byte(`[]`)); !errors.Is(err, boom) {
		t.Fatalf("Put() error = %v, want %v", err, boom)
	}
}

func TestDocumentSQLite_Get(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
		WithArgs(HistoryKey).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`[{"id":1}]`))

	got, err := store.Get(context.Background(), HistoryKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("Get() = %s", got)
	}

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
		WithArgs(ConfigKey).
		WillReturnError(sql.ErrNoRows)
	if _, err := store.Get(context.Background(), ConfigKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() missing error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
