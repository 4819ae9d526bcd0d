// Package extract runs one full prompt extraction: walk the input tree,
// write the enabled outputs, and report. The walk drives everything; outputs
// that cover the whole run (concatenated file, manifest, index) are written
// once the walk has finished.
package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/pdiddy/prompt-extract/internal/index"
	"github.com/pdiddy/prompt-extract/internal/output"
	"github.com/pdiddy/prompt-extract/internal/report"
	"github.com/pdiddy/prompt-extract/internal/scan"
	"github.com/pdiddy/prompt-extract/pkg/types"
)

// Summary holds the outcome of a run.
type Summary struct {
	Scan scan.Result

	// Lines is the number of prompts written to the concatenated file.
	Lines int

	// Index is set when the prompt index was synced.
	Index *index.SyncSummary
}

// Run extracts prompts from cfg.InputDir on fs. Relative paths on fs must
// resolve against cfg.WorkDir and absolute paths must resolve as given; the
// configured paths are normalised with LocalPath first. When the input root is
// missing it returns scan.ErrInputNotFound before writing anything. Progress
// and per-file errors go to w.
func Run(ctx context.Context, fs billy.Filesystem, cfg types.ExtractionConfig, w io.Writer) (Summary, error) {
	cfg.InputDir = LocalPath(cfg.WorkDir, cfg.InputDir)
	cfg.OutputFile = LocalPath(cfg.WorkDir, cfg.OutputFile)
	cfg.Manifest = LocalPath(cfg.WorkDir, cfg.Manifest)

	writer := output.NewWriter(fs, cfg)
	walker := scan.NewWalker(fs, cfg, writer, w)

	if err := walker.CheckRoot(); err != nil {
		return Summary{}, err
	}

	report.Scanning(w, walker.Root())
	res, err := walker.Walk(ctx)
	if err != nil {
		return Summary{}, err
	}
	report.Summary(w, res.Stats)

	summary := Summary{Scan: res}

	if cfg.ConcatenatePrompts {
		n, err := writer.WriteConcatenated(res.Prompts)
		if err != nil {
			return summary, err
		}
		summary.Lines = n
	}

	if cfg.HasOutputs() {
		report.Written(w, report.Outputs{
			Concatenated: cfg.ConcatenatePrompts,
			OutputFile:   cfg.OutputFile,
			Lines:        summary.Lines,
			Individual:   cfg.SaveIndividualFiles,
			Sidecars:     res.Stats.SidecarsWritten,
		})
	} else {
		report.NothingWritten(w)
	}

	if cfg.Manifest != "" {
		m := output.NewManifest(walker.Root(), res.Records)
		if err := writer.WriteManifest(cfg.Manifest, m); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "Wrote manifest %s (%d images)\n", cfg.Manifest, m.Images)
	}

	if cfg.Index != "" {
		synced, err := syncIndex(ctx, ResolvePath(cfg.WorkDir, cfg.Index), walker.Root(), res.Records, w)
		if err != nil {
			return summary, err
		}
		summary.Index = &synced
	}

	return summary, nil
}

func syncIndex(ctx context.Context, path, root string, records []types.ImageRecord, w io.Writer) (index.SyncSummary, error) {
	store, err := index.NewStore(path)
	if err != nil {
		return index.SyncSummary{}, err
	}
	defer store.Close()

	return store.Sync(ctx, root, records, w)
}

// LocalPath rewrites p for a filesystem whose relative paths resolve against
// workDir. Paths inside workDir stay relative and cleaned; paths that climb
// out of it with ".." become absolute. Absolute and empty paths are returned
// unchanged apart from cleaning.
func LocalPath(workDir, p string) string {
	if p == "" {
		return p
	}
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p
	}
	if p != ".." && !strings.HasPrefix(p, ".."+string(filepath.Separator)) {
		return p
	}
	abs, err := filepath.Abs(ResolvePath(workDir, p))
	if err != nil {
		return ResolvePath(workDir, p)
	}
	return abs
}

// ResolvePath returns p unchanged when it is absolute, and joined to workDir
// otherwise.
func ResolvePath(workDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
