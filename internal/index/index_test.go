// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prompt-extract/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", DefaultPath))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var baseTime = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func record(path, prompt string) types.ImageRecord {
	rec := types.ImageRecord{
		Path:    path,
		Folder:  filepath.Dir(path),
		Status:  types.PromptMissing,
		ModTime: baseTime,
	}
	if prompt != "" {
		rec.Status = types.PromptExtracted
		rec.Prompt = prompt
	}
	return rec
}

func sampleRecords() []types.ImageRecord {
	return []types.ImageRecord{
		record("input/castles/1.png", "a castle at dusk, volumetric light"),
		record("input/castles/2.png", "a ruined castle in fog"),
		record("input/castles/towers/3.png", "a stone tower, 50% cloud cover"),
		record("input/animals/4.png", "a red fox in snow"),
		record("input/animals/5.png", ""),
	}
}

func countRows(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM images`).Scan(&n))
	return n
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store := testStore(t)

	var count int
	err := store.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'images'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.Sync(context.Background(), "input", sampleRecords(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, 4, countRows(t, store))
}

// --- sync tests ---

func TestSync(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	var log bytes.Buffer
	summary, err := store.Sync(ctx, "input", sampleRecords(), &log)
	require.NoError(t, err)
	assert.Equal(t, SyncSummary{Indexed: 4}, summary)
	assert.Equal(t, 4, summary.Total())
	assert.Contains(t, log.String(), "index: 4 prompts (4 indexed, 0 updated, 0 skipped, 0 removed)")
	assert.Equal(t, 4, countRows(t, store))

	t.Run("unchanged records are skipped", func(t *testing.T) {
		summary, err := store.Sync(ctx, "input", sampleRecords(), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, SyncSummary{Skipped: 4}, summary)
	})

	t.Run("changed mod time or prompt updates", func(t *testing.T) {
		recs := sampleRecords()
		recs[0].ModTime = baseTime.Add(time.Hour)
		recs[1].Prompt = "a ruined castle in heavy fog"

		summary, err := store.Sync(ctx, "input", recs, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, SyncSummary{Updated: 2, Skipped: 2}, summary)

		got, err := store.Search(ctx, SearchOptions{Query: "heavy"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "input/castles/2.png", got[0].Path)
	})

	t.Run("vanished and prompt-less images are removed", func(t *testing.T) {
		recs := sampleRecords()[:2]
		recs = append(recs, record("input/animals/4.png", ""))

		summary, err := store.Sync(ctx, "input", recs, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Removed)
		assert.Equal(t, 2, countRows(t, store))
	})
}

func TestSyncLeavesOtherRootsAlone(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Sync(ctx, "archive", []types.ImageRecord{record("archive/old.png", "an old prompt")}, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = store.Sync(ctx, "input", sampleRecords(), &bytes.Buffer{})
	require.NoError(t, err)

	summary, err := store.Sync(ctx, "input", nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Removed)
	assert.Equal(t, 1, countRows(t, store))
}

// --- search tests ---

func TestSearch(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, "input", sampleRecords(), &bytes.Buffer{})
	require.NoError(t, err)

	tests := []struct {
		name      string
		opts      SearchOptions
		wantPaths []string
	}{
		{
			name:      "single term",
			opts:      SearchOptions{Query: "castle"},
			wantPaths: []string{"input/castles/1.png", "input/castles/2.png"},
		},
		{
			name:      "terms are and-ed",
			opts:      SearchOptions{Query: "castle fog"},
			wantPaths: []string{"input/castles/2.png"},
		},
		{
			name:      "case insensitive",
			opts:      SearchOptions{Query: "FOX"},
			wantPaths: []string{"input/animals/4.png"},
		},
		{
			name:      "percent is literal",
			opts:      SearchOptions{Query: "50%"},
			wantPaths: []string{"input/castles/towers/3.png"},
		},
		{
			name:      "folder includes subfolders",
			opts:      SearchOptions{Folder: "input/castles"},
			wantPaths: []string{"input/castles/1.png", "input/castles/2.png", "input/castles/towers/3.png"},
		},
		{
			name:      "folder and query",
			opts:      SearchOptions{Folder: "input/castles/towers/", Query: "stone"},
			wantPaths: []string{"input/castles/towers/3.png"},
		},
		{
			name:      "limit",
			opts:      SearchOptions{Folder: "input", MaxResults: 2},
			wantPaths: []string{"input/animals/4.png", "input/castles/1.png"},
		},
		{
			name:      "no match",
			opts:      SearchOptions{Query: "spaceship"},
			wantPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, tt.opts)
			require.NoError(t, err)
			var paths []string
			for _, e := range got {
				paths = append(paths, e.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestSearchEntryFields(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	_, err := store.Sync(ctx, "input", sampleRecords(), &bytes.Buffer{})
	require.NoError(t, err)

	got, err := store.Search(ctx, SearchOptions{Query: "fox"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "input/animals", got[0].Folder)
	assert.Equal(t, "a red fox in snow", got[0].Prompt)
	assert.True(t, baseTime.Equal(got[0].ModTime))
	assert.False(t, got[0].IndexedAt.IsZero())
}

func TestSearchOptionsIsEmpty(t *testing.T) {
	assert.True(t, SearchOptions{}.IsEmpty())
	assert.True(t, SearchOptions{Query: "  "}.IsEmpty())
	assert.False(t, SearchOptions{Query: "fox"}.IsEmpty())
	assert.False(t, SearchOptions{Folder: "input"}.IsEmpty())
}
