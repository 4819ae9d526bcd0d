// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes extracted prompts: per-image sidecar files, one
// concatenated prompt file, and an optional manifest of every scanned image.
// Existing files are overwritten, so repeated runs over the same input produce
// identical output.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pdiddy/prompt-extract/pkg/types"
)

const sidecarExt = ".txt"

// Writer writes prompt outputs to a filesystem rooted at the working
// directory.
type Writer struct {
	fs  billy.Filesystem
	cfg types.ExtractionConfig
}

// NewWriter returns a Writer for cfg.
func NewWriter(fs billy.Filesystem, cfg types.ExtractionConfig) *Writer {
	return &Writer{fs: fs, cfg: cfg}
}

// SidecarPath returns imagePath with its extension replaced by .txt. Leading
// dots of the file name are not an extension, so ".png" maps to ".png.txt".
func SidecarPath(imagePath string) string {
	dir, base := filepath.Split(imagePath)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return dir + strings.TrimSuffix(base, ext) + sidecarExt
}

// WriteSidecar writes prompt verbatim to the sidecar of imagePath and returns
// the sidecar path.
func (w *Writer) WriteSidecar(imagePath, prompt string) (string, error) {
	path := SidecarPath(imagePath)
	if err := util.WriteFile(w.fs, path, []byte(prompt), 0o644); err != nil {
		return path, fmt.Errorf("writing sidecar: %w", err)
	}
	return path, nil
}

// WriteConcatenated writes prompts to the configured output file, one per
// line, each followed by a newline. Blank prompts are dropped when
// StripEmptyLines is set. It returns the number of lines written.
func (w *Writer) WriteConcatenated(prompts []string) (int, error) {
	var (
		b     strings.Builder
		lines int
	)
	for _, p := range prompts {
		if w.cfg.StripEmptyLines && strings.TrimSpace(p) == "" {
			continue
		}
		b.WriteString(p)
		b.WriteByte('\n')
		lines++
	}

	if err := util.WriteFile(w.fs, w.cfg.OutputFile, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", w.cfg.OutputFile, err)
	}
	return lines, nil
}
