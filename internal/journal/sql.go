package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder and column syntax.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// OpenSQLite opens a single-writer SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}
	return db, nil
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// SQLSink stores entries in a journal_entries table keyed by session and
// sequence number.
type SQLSink struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLSink creates the table if needed.
func NewSQLSink(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLSink, error) {
	s := &SQLSink{db: db, dialect: dialect}
	body := "TEXT"
	if dialect == DialectPostgres {
		body = "JSONB"
	}
	schema := `CREATE TABLE IF NOT EXISTS journal_entries (
	session TEXT NOT NULL,
	seq BIGINT NOT NULL,
	day INTEGER NOT NULL,
	kind TEXT NOT NULL,
	body ` + body + ` NOT NULL,
	PRIMARY KEY (session, seq)
)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create journal table: %w", err)
	}
	return s, nil
}

// Write inserts one entry. Writing the same sequence number twice fails.
func (s *SQLSink) Write(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		s.bind(`INSERT INTO journal_entries (session, seq, day, kind, body) VALUES (?, ?, ?, ?, ?)`),
		e.Session, int64(e.Seq), e.Day, string(e.Kind), string(body),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry %d: %w", e.Seq, err)
	}
	return nil
}

// Entries returns a session's entries in sequence order.
func (s *SQLSink) Entries(ctx context.Context, session string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		s.bind(`SELECT body FROM journal_entries WHERE session = ? ORDER BY seq`), session)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		var e Entry
		if err := json.Unmarshal([]byte(body), &e); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// bind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLSink) bind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
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
