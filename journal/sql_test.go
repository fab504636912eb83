package journal

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var at = time.Date(2024, 7, 22, 9, 15, 0, 0, time.UTC)

func TestRecord_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	j := New(db, Postgres)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activity_log (entity, entity_id, action, payload, trace_id, span_id, recorded_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		WithArgs("product", "p1", "created", `{"id":"p1"}`, "", "", "2024-07-22T09:15:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := Entry{Entity: EntityProduct, EntityID: "p1", Action: ActionCreated, Payload: `{"id":"p1"}`, RecordedAt: at}
	if err := j.Record(context.Background(), e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecord_MySQLKeepsQuestionMarks(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	j := New(db, MySQL)

	mock.ExpectExec(regexp.QuoteMeta(`VALUES (?, ?, ?, ?, ?, ?, ?)`)).
		WithArgs("order", "o1", "deleted", nil, "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := j.Record(context.Background(), Entry{Entity: EntityOrder, EntityID: "o1", Action: ActionDeleted, RecordedAt: at}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecord_WrapsDriverError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	j := New(db, SQLite)

	boom := errors.New("disk full")
	mock.ExpectExec(`INSERT INTO activity_log`).WillReturnError(boom)

	err := j.Record(context.Background(), Entry{Entity: EntityUser, EntityID: "u1", Action: ActionUpdated, RecordedAt: at})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}

func TestRecent_ScansRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	j := New(db, Postgres)

	rows := sqlmock.NewRows([]string{"entity", "entity_id", "action", "payload", "trace_id", "span_id", "recorded_at"}).
		AddRow("order", "o4", "status_changed", `{"status":"Shipped"}`, "abc", "def", "2024-07-22T11:45:00Z").
		AddRow("product", "p6", "deleted", "", "", "", "2024-07-22T11:00:00.5Z")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT entity, entity_id, action, COALESCE(payload, ''), trace_id, span_id, recorded_at FROM activity_log ORDER BY id DESC LIMIT $1`)).
		WithArgs(2).
		WillReturnRows(rows)

	got, err := j.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 || got[0].Action != ActionStatusChanged || got[0].TraceID != "abc" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[1].RecordedAt.Nanosecond() != 500000000 {
		t.Fatalf("fractional seconds lost: %v", got[1].RecordedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	j := New(db, MySQL)

	mock.ExpectQuery(`FROM activity_log ORDER BY id DESC LIMIT \?`).
		WithArgs(DefaultLimit).
		WillReturnRows(sqlmock.NewRows([]string{"entity", "entity_id", "action", "payload", "trace_id", "span_id", "recorded_at"}))

	got, err := j.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}

func TestMigrate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS activity_log`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := New(db, Postgres).Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	if err := New(db, Dialect("oracle")).Migrate(context.Background()); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpen_RejectsUnknownDriverAndBadDSN(t *testing.T) {
	if _, err := Open(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := Open(context.Background(), MySQL, "not a dsn"); err == nil {
		t.Fatalf("expected error for malformed mysql dsn")
	}
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "activity.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer j.Close()

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := j.Record(ctx, Entry{Entity: EntityProduct, EntityID: id, Action: ActionCreated, RecordedAt: at}); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}
	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 || got[0].EntityID != "p3" || got[1].EntityID != "p2" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if !got[0].RecordedAt.Equal(at) {
		t.Fatalf("time mismatch: %v", got[0].RecordedAt)
	}
}

func TestRebind(t *testing.T) {
	pg := New(nil, Postgres)
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("unexpected rebind: %q", got)
	}
	my := New(nil, MySQL)
	if got := my.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("mysql query must be unchanged: %q", got)
	}
}
