package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id            TEXT PRIMARY KEY,
	created_at_ns INTEGER NOT NULL,
	turns         INTEGER NOT NULL,
	skipped       INTEGER NOT NULL,
	outcome       TEXT NOT NULL,
	reply_preview TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_exchanges_created_at ON exchanges(created_at_ns);
`

// SQLiteStore persists exchanges to a SQLite database. Use ":memory:" as
// the path for an in-memory database in tests.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	// SQLite serializes writers; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, e *Exchange) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO exchanges (id, created_at_ns, turns, skipped, outcome, reply_preview)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UnixNano(), e.Turns, e.Skipped, e.Outcome, e.ReplyPreview,
	)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Exchange, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at_ns, turns, skipped, outcome, reply_preview
		 FROM exchanges WHERE id = ?`, id)

	e, err := scanExchange(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("query exchange: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at_ns, turns, skipped, outcome, reply_preview
		 FROM exchanges ORDER BY created_at_ns ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()

	var out []*Exchange
	for rows.Next() {
		e, err := scanExchange(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchanges: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exchanges`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count exchanges: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanExchange(scan func(...any) error) (*Exchange, error) {
	var e Exchange
	var createdAtNs int64
	if err := scan(&e.ID, &createdAtNs, &e.Turns, &e.Skipped, &e.Outcome, &e.ReplyPreview); err != nil {
		return nil, err
	}

	e.CreatedAt = time.Unix(0, createdAtNs).UTC()
	return &e, nil
}
