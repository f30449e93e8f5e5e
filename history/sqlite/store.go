package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mwantia/argtree/history"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps entries in a single history table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath, which may be ":memory:".
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if dbPath == ":memory:" {
		// Every new connection would see its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{
		db: db,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS argtree_history (
		key TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		time INTEGER NOT NULL,
		line TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT ''
	);
	`

	_, err := ss.db.Exec(schema)
	return err
}

func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Append(ctx context.Context, entry history.Entry) error {
	_, err := ss.db.ExecContext(ctx,
		"INSERT INTO argtree_history (key, id, time, line, path, error) VALUES (?, ?, ?, ?, ?, ?)",
		entry.Key(), entry.ID, entry.Time.UnixNano(), entry.Line, strings.Join(entry.Path, " "), entry.Error,
	)
	return err
}

func (ss *SQLiteStore) List(ctx context.Context, limit int) ([]history.Entry, error) {
	query := "SELECT id, time, line, path, error FROM (SELECT * FROM argtree_history ORDER BY key DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	query += ") ORDER BY key ASC"

	rows, err := ss.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var (
			entry history.Entry
			nanos int64
			path  string
		)
		if err := rows.Scan(&entry.ID, &nanos, &entry.Line, &path, &entry.Error); err != nil {
			return nil, err
		}
		entry.Time = time.Unix(0, nanos)
		if path != "" {
			entry.Path = strings.Fields(path)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
