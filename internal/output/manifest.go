// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prompt-extract/pkg/types"
)

// Manifest lists every scanned image with its outcome.
type Manifest struct {
	InputDir string              `json:"input_dir" yaml:"input_dir"`
	Images   int                 `json:"images" yaml:"images"`
	Prompts  int                 `json:"prompts" yaml:"prompts"`
	Records  []types.ImageRecord `json:"records" yaml:"records"`
}

// NewManifest builds a Manifest from scan records.
func NewManifest(inputDir string, records []types.ImageRecord) Manifest {
	m := Manifest{
		InputDir: inputDir,
		Images:   len(records),
		Records:  records,
	}
	for _, r := range records {
		if r.HasPrompt() {
			m.Prompts++
		}
	}
	return m
}

// WriteManifest writes m to path. A .json extension selects JSON; anything
// else is written as YAML.
func (w *Writer) WriteManifest(path string, m Manifest) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(m, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := util.WriteFile(w.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
