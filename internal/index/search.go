// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SearchOptions holds parameters for prompt searches.
type SearchOptions struct {
	// Query is split into whitespace-separated terms; every term must occur
	// in the prompt (case-insensitive for ASCII).
	Query string

	// Folder restricts results to a folder and its subfolders.
	Folder string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the search has no terms and no filter.
func (o SearchOptions) IsEmpty() bool {
	return strings.TrimSpace(o.Query) == "" && o.Folder == ""
}

// Entry is one indexed image.
type Entry struct {
	Path      string    `json:"path" yaml:"path"`
	Folder    string    `json:"folder" yaml:"folder"`
	Prompt    string    `json:"prompt" yaml:"prompt"`
	ModTime   time.Time `json:"mod_time" yaml:"mod_time"`
	IndexedAt time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// Search returns indexed prompts matching opts, ordered by path.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT path, folder, prompt, mod_time, indexed_at FROM images WHERE 1=1`)

	for _, term := range strings.Fields(opts.Query) {
		qb.WriteString(` AND prompt LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(term)+"%")
	}

	if opts.Folder != "" {
		folder := strings.TrimRight(opts.Folder, "/")
		qb.WriteString(` AND (folder = ? OR folder LIKE ? ESCAPE '\')`)
		args = append(args, folder, escapeLike(folder)+"/%")
	}

	qb.WriteString(` ORDER BY path LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e                  Entry
			modTime, indexedAt string
		)
		if err := rows.Scan(&e.Path, &e.Folder, &e.Prompt, &modTime, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.ModTime, _ = time.Parse(time.RFC3339Nano, modTime)
		e.IndexedAt, _ = time.Parse(time.RFC3339, indexedAt)
		results = append(results, e)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
