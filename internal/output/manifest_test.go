// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prompt-extract/pkg/types"
)

func sampleRecords() []types.ImageRecord {
	mod := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []types.ImageRecord{
		{
			Path: "input/a/1.png", Folder: "input/a", Prompt: "a castle at dusk",
			Status: types.PromptExtracted, Sidecar: "input/a/1.txt", ModTime: mod,
		},
		{
			Path: "input/a/2.png", Folder: "input/a",
			Status: types.PromptFailed, Error: "not a PNG file", ModTime: mod,
		},
		{
			Path: "input/c/3.png", Folder: "input/c",
			Status: types.PromptMissing, ModTime: mod,
		},
	}
}

func TestNewManifest(t *testing.T) {
	m := NewManifest("input", sampleRecords())
	assert.Equal(t, "input", m.InputDir)
	assert.Equal(t, 3, m.Images)
	assert.Equal(t, 1, m.Prompts)
}

func TestWriteManifest(t *testing.T) {
	m := NewManifest("input", sampleRecords())

	t.Run("yaml", func(t *testing.T) {
		fs := memfs.New()
		require.NoError(t, NewWriter(fs, types.DefaultExtractionConfig()).WriteManifest("manifest.yaml", m))

		data, err := util.ReadFile(fs, "manifest.yaml")
		require.NoError(t, err)

		var got Manifest
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, m.Images, got.Images)
		require.Len(t, got.Records, 3)
		assert.Equal(t, "a castle at dusk", got.Records[0].Prompt)
		assert.Equal(t, types.PromptFailed, got.Records[1].Status)
		assert.Contains(t, string(data), "status: no_prompt")
	})

	t.Run("json by extension", func(t *testing.T) {
		fs := memfs.New()
		require.NoError(t, NewWriter(fs, types.DefaultExtractionConfig()).WriteManifest("out/manifest.JSON", m))

		data, err := util.ReadFile(fs, "out/manifest.JSON")
		require.NoError(t, err)

		var got Manifest
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 1, got.Prompts)
		assert.Equal(t, "input/a/1.txt", got.Records[0].Sidecar)
	})
}
