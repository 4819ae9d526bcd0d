// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/prompt-extract/internal/extract"
	"github.com/pdiddy/prompt-extract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract prompts from PNG images under the input directory",
	Long: `Extract walks the input directory recursively, reads the prompt text
field of every .png file, strips the negative prompt and generation
parameters, and writes the results.

Sidecar mode writes <image>.txt next to each image. Concatenated mode writes
every prompt, one per line, to prompts.txt in the working directory. Images
that cannot be read are reported and skipped; only a missing input directory
stops the run.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

// extractFlags maps config keys to the extract command flags bound to them.
var extractFlags = map[string]string{
	"workdir":               "workdir",
	"input_dir":             "input-dir",
	"output_file":           "output-file",
	"save_individual_files": "save-individual",
	"concatenate_prompts":   "concatenate",
	"remove_newlines":       "remove-newlines",
	"strip_empty_lines":     "strip-empty-lines",
	"metadata_key":          "metadata-key",
	"ignore_file":           "ignore-file",
	"manifest":              "manifest",
	"index":                 "index",
}

func init() {
	addExtractFlags(extractCmd.Flags())
	if err := bindExtractFlags(viper.GetViper(), extractCmd.Flags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(extractCmd)
}

func addExtractFlags(f *pflag.FlagSet) {
	def := types.DefaultExtractionConfig()
	f.String("workdir", def.WorkDir, "working directory that input, output, manifest and index paths are relative to")
	f.String("input-dir", def.InputDir, "directory to scan for PNG images")
	f.String("output-file", def.OutputFile, "concatenated prompt file")
	f.Bool("save-individual", def.SaveIndividualFiles, "write a .txt sidecar next to each image")
	f.Bool("concatenate", def.ConcatenatePrompts, "write all prompts to the concatenated prompt file")
	f.Bool("remove-newlines", def.RemoveNewlines, "collapse each prompt into a single line")
	f.Bool("strip-empty-lines", def.StripEmptyLines, "drop blank prompts from the concatenated file")
	f.String("metadata-key", def.MetadataKey, "PNG text keyword holding the prompt")
	f.String("ignore-file", def.IgnoreFile, "gitignore-style file in the input directory listing paths to skip")
	f.String("manifest", "", "write a YAML (or .json) manifest of every scanned image")
	f.String("index", "", "sync extracted prompts into this SQLite database")
}

func bindExtractFlags(v *viper.Viper, f *pflag.FlagSet) error {
	for key, name := range extractFlags {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if err := os.Chdir(workDir); err != nil {
		return fmt.Errorf("entering working directory: %w", err)
	}
	cfg.WorkDir = workDir

	// Unconfined: relative paths resolve against the working directory,
	// absolute paths as given.
	_, err = extract.Run(cmd.Context(), osfs.New(""), cfg, cmd.OutOrStdout())
	return err
}

// loadConfig merges defaults, config file, environment and flags from v.
func loadConfig(v *viper.Viper) (types.ExtractionConfig, error) {
	cfg := types.DefaultExtractionConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.InputDir == "" {
		return cfg, fmt.Errorf("input_dir must not be empty")
	}
	if cfg.ConcatenatePrompts && cfg.OutputFile == "" {
		return cfg, fmt.Errorf("output_file must not be empty when concatenate_prompts is set")
	}
	if cfg.MetadataKey == "" {
		return cfg, fmt.Errorf("metadata_key must not be empty")
	}
	return cfg, nil
}
