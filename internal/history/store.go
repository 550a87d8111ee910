// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of processed ideas. Each processed
// idea adds one row of derived metadata (never the critique text itself);
// removing the database never affects pipeline correctness.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

const dbFile = "refinery.db"

// Entry is one ledger row.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	Slug       string
	VoiceStyle string
	OutputDir  string
	EmailSent  bool
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dir/refinery.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating history directory: %v", types.ErrFilesystem, err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		slug TEXT NOT NULL,
		voice_style TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		email_sent INTEGER NOT NULL
	)`)
	return err
}

// Insert records one processed idea.
func (s *Store) Insert(ctx context.Context, rep *types.Report) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (timestamp, slug, voice_style, output_dir, email_sent) VALUES (?, ?, ?, ?, ?)`,
		rep.Timestamp.UTC().Format(time.RFC3339), rep.Slug, string(rep.VoiceStyle), rep.OutputDir, rep.EmailSent)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, slug, voice_style, output_dir, email_sent
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Slug, &e.VoiceStyle, &e.OutputDir, &e.EmailSent); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
