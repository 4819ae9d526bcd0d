// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite catalogue of extracted prompts so a collection
// can be searched without rescanning the images. Each sync mirrors one input
// root: new and changed images are upserted, unchanged ones are skipped, and
// images that vanished or lost their prompt are removed.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/prompt-extract/pkg/types"
)

// DefaultPath is the database file used when the index is enabled without an
// explicit path.
const DefaultPath = "prompts.db"

const defaultMaxResults = 20

// Store manages the prompt index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the database at path, creating its directory and
// schema if needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, maxResults: defaultMaxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS images (
			path TEXT PRIMARY KEY,
			folder TEXT NOT NULL,
			prompt TEXT NOT NULL,
			mod_time TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_images_folder ON images(folder)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SyncSummary holds counts from one index sync.
type SyncSummary struct {
	Indexed int
	Updated int
	Skipped int
	Removed int
}

// Total returns the number of prompts from the synced root that are in the
// index after the sync.
func (s SyncSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped
}

// Sync brings the index in line with the records of one scan of root. It
// runs in a single transaction and prints a one-line summary to w.
func (s *Store) Sync(ctx context.Context, root string, records []types.ImageRecord, w io.Writer) (SyncSummary, error) {
	var summary SyncSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := loadState(ctx, tx)
	if err != nil {
		return summary, err
	}

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO images (path, folder, prompt, mod_time, indexed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			folder=excluded.folder, prompt=excluded.prompt,
			mod_time=excluded.mod_time, indexed_at=excluded.indexed_at`)
	if err != nil {
		return summary, fmt.Errorf("preparing upsert: %w", err)
	}
	defer upsert.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		if !rec.HasPrompt() {
			continue
		}
		seen[rec.Path] = true
		modTime := rec.ModTime.UTC().Format(time.RFC3339Nano)

		prev, ok := existing[rec.Path]
		if ok && prev.modTime == modTime && prev.prompt == rec.Prompt {
			summary.Skipped++
			continue
		}
		if _, err := upsert.ExecContext(ctx, rec.Path, rec.Folder, rec.Prompt, modTime, now); err != nil {
			return summary, fmt.Errorf("indexing %s: %w", rec.Path, err)
		}
		if ok {
			summary.Updated++
		} else {
			summary.Indexed++
		}
	}

	prefix := filepath.Clean(root) + string(filepath.Separator)
	for path := range existing {
		if seen[path] || !strings.HasPrefix(path, prefix) {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE path = ?`, path); err != nil {
			return summary, fmt.Errorf("removing %s: %w", path, err)
		}
		summary.Removed++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "index: %d prompts (%d indexed, %d updated, %d skipped, %d removed)\n",
		summary.Total(), summary.Indexed, summary.Updated, summary.Skipped, summary.Removed)
	return summary, nil
}

type indexState struct {
	modTime string
	prompt  string
}

func loadState(ctx context.Context, tx *sql.Tx) (map[string]indexState, error) {
	rows, err := tx.QueryContext(ctx, `SELECT path, mod_time, prompt FROM images`)
	if err != nil {
		return nil, fmt.Errorf("reading index state: %w", err)
	}
	defer rows.Close()

	state := make(map[string]indexState)
	for rows.Next() {
		var (
			path string
			st   indexState
		)
		if err := rows.Scan(&path, &st.modTime, &st.prompt); err != nil {
			return nil, fmt.Errorf("scanning index state: %w", err)
		}
		state[path] = st
	}
	return state, rows.Err()
}
