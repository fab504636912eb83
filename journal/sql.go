package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder style and DDL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z"

var schemas = map[Dialect]string{
	Postgres: `CREATE TABLE IF NOT EXISTS activity_log (
    id          BIGSERIAL PRIMARY KEY,
    entity      TEXT NOT NULL,
    entity_id   TEXT NOT NULL,
    action      TEXT NOT NULL,
    payload     TEXT,
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',
    recorded_at TEXT NOT NULL
)`,
	MySQL: `CREATE TABLE IF NOT EXISTS activity_log (
    id          BIGINT AUTO_INCREMENT PRIMARY KEY,
    entity      VARCHAR(32) NOT NULL,
    entity_id   VARCHAR(64) NOT NULL,
    action      VARCHAR(32) NOT NULL,
    payload     TEXT,
    trace_id    VARCHAR(32) NOT NULL DEFAULT '',
    span_id     VARCHAR(16) NOT NULL DEFAULT '',
    recorded_at VARCHAR(40) NOT NULL
)`,
	SQLite: `CREATE TABLE IF NOT EXISTS activity_log (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    entity      TEXT NOT NULL,
    entity_id   TEXT NOT NULL,
    action      TEXT NOT NULL,
    payload     TEXT,
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',
    recorded_at TEXT NOT NULL
)`,
}

// SQL writes entries to the activity_log table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

var _ Journal = (*SQL)(nil)

// New wraps an open database. It does not touch the schema; call Migrate.
func New(db *sql.DB, d Dialect) *SQL {
	return &SQL{db: db, dialect: d}
}

// Open connects with the driver named by d and applies the schema.
// For SQLite, dsn is a file path.
func Open(ctx context.Context, d Dialect, dsn string) (*SQL, error) {
	driver := string(d)
	switch d {
	case Postgres:
	case MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("journal: parse mysql dsn: %w", err)
		}
		dsn = cfg.FormatDSN()
	case SQLite:
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn)
	default:
		return nil, fmt.Errorf("journal: unsupported driver %q", d)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", d, err)
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: ping %s: %w", d, err)
	}

	j := New(db, d)
	if err := j.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *SQL) Close() error { return j.db.Close() }

// Migrate creates the table if it does not exist.
func (j *SQL) Migrate(ctx context.Context) error {
	schema, ok := schemas[j.dialect]
	if !ok {
		return fmt.Errorf("journal: unsupported driver %q", j.dialect)
	}
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("journal: apply schema: %w", err)
	}
	return nil
}

func (j *SQL) Record(ctx context.Context, e Entry) error {
	q := j.rebind(`INSERT INTO activity_log (entity, entity_id, action, payload, trace_id, span_id, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := j.db.ExecContext(ctx, q,
		string(e.Entity),
		e.EntityID,
		string(e.Action),
		nullableString(e.Payload),
		e.TraceID,
		e.SpanID,
		e.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("journal: record %s %s: %w", e.Entity, e.EntityID, err)
	}
	return nil
}

func (j *SQL) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := j.rebind(`SELECT entity, entity_id, action, COALESCE(payload, ''), trace_id, span_id, recorded_at FROM activity_log ORDER BY id DESC LIMIT ?`)
	rows, err := j.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e          Entry
			recordedAt string
		)
		if err := rows.Scan(&e.Entity, &e.EntityID, &e.Action, &e.Payload, &e.TraceID, &e.SpanID, &recordedAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("journal: parse time %q: %w", recordedAt, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: rows: %w", err)
	}
	return out, nil
}

// rebind turns ? placeholders into $n for Postgres.
func (j *SQL) rebind(q string) string {
	if j.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
