// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PromptStatus records what happened when a candidate image was read.
type PromptStatus string

const (
	// PromptExtracted means a non-empty prompt was recovered.
	PromptExtracted PromptStatus = "extracted"
	// PromptMissing means the image had no usable prompt text.
	PromptMissing PromptStatus = "no_prompt"
	// PromptFailed means the image could not be opened or decoded.
	PromptFailed PromptStatus = "failed"
)

// ImageRecord is one candidate image found during a scan.
type ImageRecord struct {
	// Path is the image path relative to the working directory.
	Path string `json:"path" yaml:"path"`

	// Folder is the directory containing the image.
	Folder string `json:"folder" yaml:"folder"`

	// Prompt is the sanitized prompt. Empty unless Status is PromptExtracted.
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	// Status is the extraction outcome.
	Status PromptStatus `json:"status" yaml:"status"`

	// Error describes why the image failed, if it did.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Sidecar is the path of the sidecar text file written for this image.
	Sidecar string `json:"sidecar,omitempty" yaml:"sidecar,omitempty"`

	// ModTime is the image modification time at scan time.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// HasPrompt reports whether the record carries an extracted prompt.
func (r ImageRecord) HasPrompt() bool {
	return r.Status == PromptExtracted
}
