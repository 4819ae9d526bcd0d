// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default configuration values, matching a bare run of the extractor from a
// directory that holds input/.
const (
	DefaultInputDir    = "input"
	DefaultOutputFile  = "prompts.txt"
	DefaultMetadataKey = "parameters"
	DefaultIgnoreFile  = ".promptignore"
)

// ExtractionConfig holds every setting for one extraction run. It is built
// once at start-up (flags, config file, environment) and passed to the walker
// and writer.
type ExtractionConfig struct {
	// WorkDir is the base directory that InputDir, OutputFile, Manifest and
	// Index are resolved against.
	WorkDir string `json:"workdir" yaml:"workdir" mapstructure:"workdir"`

	// InputDir is the root of the image tree (default "input").
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputFile is the concatenated prompt file (default "prompts.txt").
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`

	// SaveIndividualFiles writes a .txt sidecar next to each image with a prompt.
	SaveIndividualFiles bool `json:"save_individual_files" yaml:"save_individual_files" mapstructure:"save_individual_files"`

	// ConcatenatePrompts writes every prompt, one per line, to OutputFile.
	ConcatenatePrompts bool `json:"concatenate_prompts" yaml:"concatenate_prompts" mapstructure:"concatenate_prompts"`

	// RemoveNewlines collapses each multi-line prompt into a single line.
	RemoveNewlines bool `json:"remove_newlines" yaml:"remove_newlines" mapstructure:"remove_newlines"`

	// StripEmptyLines drops blank prompts from OutputFile.
	StripEmptyLines bool `json:"strip_empty_lines" yaml:"strip_empty_lines" mapstructure:"strip_empty_lines"`

	// MetadataKey is the PNG text chunk keyword holding the prompt
	// (default "parameters").
	MetadataKey string `json:"metadata_key" yaml:"metadata_key" mapstructure:"metadata_key"`

	// IgnoreFile is a gitignore-style file, relative to InputDir, listing
	// paths to skip. A missing file is not an error.
	IgnoreFile string `json:"ignore_file" yaml:"ignore_file" mapstructure:"ignore_file"`

	// Manifest, when set, is the path of a YAML or JSON listing of every
	// scanned image and its outcome.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	// Index, when set, is the path of a SQLite database that extracted
	// prompts are synced into.
	Index string `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
}

// DefaultExtractionConfig returns the configuration used when no flags,
// config file or environment overrides are present.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		WorkDir:             ".",
		InputDir:            DefaultInputDir,
		OutputFile:          DefaultOutputFile,
		SaveIndividualFiles: true,
		ConcatenatePrompts:  true,
		RemoveNewlines:      true,
		StripEmptyLines:     true,
		MetadataKey:         DefaultMetadataKey,
		IgnoreFile:          DefaultIgnoreFile,
	}
}

// HasOutputs reports whether at least one prompt output mode is enabled.
func (c ExtractionConfig) HasOutputs() bool {
	return c.SaveIndividualFiles || c.ConcatenatePrompts
}
