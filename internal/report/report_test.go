// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prompt-extract/internal/scan"
	"github.com/pdiddy/prompt-extract/pkg/types"
)

func TestScanning(t *testing.T) {
	var buf bytes.Buffer
	Scanning(&buf, "input")
	assert.Equal(t, "Scanning for images in 'input'...\n", buf.String())
}

func TestSummary(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "input/zeta/1.png", []byte("broken"), 0o644))
	require.NoError(t, util.WriteFile(fs, "input/alpha/2.png", []byte("broken"), 0o644))

	res, err := scan.NewWalker(fs, types.DefaultExtractionConfig(), nil, &bytes.Buffer{}).Walk(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	Summary(&buf, res.Stats)
	out := buf.String()

	assert.Contains(t, out, "--- Scan Complete ---")
	assert.Contains(t, out, "Folders scanned: 2\n - input/alpha\n - input/zeta\n")
	assert.Contains(t, out, "Total images found: 2\n")
	assert.Contains(t, out, "Prompts found: 0\n")
	assert.Contains(t, out, "Images without prompts: 2\n")
	assert.Contains(t, out, "Images that could not be read: 2\n")
}

func TestSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, scan.Statistics{})
	out := buf.String()

	assert.Contains(t, out, "Folders scanned: 0\nTotal images found: 0\n")
	assert.NotContains(t, out, "could not be read")
}

func TestWritten(t *testing.T) {
	tests := []struct {
		name string
		o    Outputs
		want []string
	}{
		{
			name: "both modes",
			o:    Outputs{Concatenated: true, OutputFile: "prompts.txt", Lines: 3, Individual: true, Sidecars: 3},
			want: []string{"Saved 3 prompts to prompts.txt", "Saved 3 individual prompt files."},
		},
		{
			name: "concatenated only",
			o:    Outputs{Concatenated: true, OutputFile: "all.txt", Lines: 0},
			want: []string{"Saved 0 prompts to all.txt"},
		},
		{
			name: "individual only",
			o:    Outputs{Individual: true, Sidecars: 7},
			want: []string{"Saved 7 individual prompt files."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Written(&buf, tt.o)
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestNothingWritten(t *testing.T) {
	var buf bytes.Buffer
	NothingWritten(&buf)
	assert.Equal(t, "No output files were saved (check configuration).\n", buf.String())
}
