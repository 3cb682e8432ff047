package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tripguide/tripd/internal/chat"
	"github.com/tripguide/tripd/internal/paths"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	provider   TEXT NOT NULL,
	message    TEXT NOT NULL,
	reply      TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS exchanges_created_at ON exchanges (created_at);
`

// A recorded exchange with its row ID.
type Entry struct {
	ID int64
	chat.Exchange
}

// SQLite-backed transcript storage. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

var _ chat.Recorder = (*Store)(nil)

// Opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := paths.EnsureParent(path); err != nil {
		return nil, fmt.Errorf("%w: creating database directory: %w", ErrTranscript, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrTranscript, path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connecting to %s: %w", ErrTranscript, path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: initializing schema: %w", ErrTranscript, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Inserts ex.
func (s *Store) Record(ctx context.Context, ex chat.Exchange) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exchanges (created_at, provider, message, reply, error) VALUES (?, ?, ?, ?, ?)`,
		ex.Time.UTC().Format(time.RFC3339Nano), ex.Provider, ex.Message, ex.Reply, ex.Error,
	)
	if err != nil {
		return fmt.Errorf("%w: recording exchange: %w", ErrTranscript, err)
	}
	return nil
}

// Returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, provider, message, reply, error FROM exchanges ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying exchanges: %w", ErrTranscript, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &created, &e.Provider, &e.Message, &e.Reply, &e.Error); err != nil {
			return nil, fmt.Errorf("%w: scanning exchange: %w", ErrTranscript, err)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("%w: exchange %d has bad timestamp %q", ErrTranscript, e.ID, created)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading exchanges: %w", ErrTranscript, err)
	}
	return entries, nil
}

// Returns the number of recorded exchanges.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exchanges`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting exchanges: %w", ErrTranscript, err)
	}
	return n, nil
}
