// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks an image tree and extracts one prompt per PNG file.
// Directory entries are visited in lexical order. Per-file failures are
// logged and counted; only a missing input root stops the walk.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/pdiddy/prompt-extract/internal/metadata"
	"github.com/pdiddy/prompt-extract/internal/sanitize"
	"github.com/pdiddy/prompt-extract/pkg/types"
)

const imageExt = ".png"

// ErrInputNotFound is returned when the input root is missing or is not a
// directory.
var ErrInputNotFound = errors.New("input directory not found")

// SidecarWriter writes the prompt for one image next to it and returns the
// sidecar path.
type SidecarWriter interface {
	WriteSidecar(imagePath, prompt string) (string, error)
}

// Result holds everything collected by one walk.
type Result struct {
	// Records lists every candidate image in discovery order.
	Records []types.ImageRecord

	// Prompts lists the extracted prompts in discovery order.
	Prompts []string

	Stats Statistics
}

// Walker scans cfg.InputDir on fs.
type Walker struct {
	fs       billy.Filesystem
	cfg      types.ExtractionConfig
	root     string
	reader   *metadata.Reader
	sidecars SidecarWriter
	log      io.Writer
}

// NewWalker returns a Walker over cfg.InputDir. When cfg.SaveIndividualFiles
// is set, sidecars receives each prompt as soon as it is extracted.
// Per-file errors and warnings go to log.
func NewWalker(fs billy.Filesystem, cfg types.ExtractionConfig, sidecars SidecarWriter, log io.Writer) *Walker {
	return &Walker{
		fs:       fs,
		cfg:      cfg,
		root:     filepath.Clean(cfg.InputDir),
		reader:   metadata.NewReader(fs, cfg.MetadataKey, log),
		sidecars: sidecars,
		log:      log,
	}
}

// Root returns the cleaned input root.
func (w *Walker) Root() string {
	return w.root
}

// CheckRoot verifies that the input root exists and is a directory.
func (w *Walker) CheckRoot() error {
	info, err := w.fs.Stat(w.root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotFound, w.root)
	}
	return nil
}

// Walk visits every .png file under the root, in lexical order.
func (w *Walker) Walk(ctx context.Context) (Result, error) {
	if err := w.CheckRoot(); err != nil {
		return Result{}, err
	}

	ignore, err := loadIgnore(w.fs, w.root, w.cfg.IgnoreFile)
	if err != nil {
		fmt.Fprintf(w.log, "warning: %v\n", err)
	}

	var res Result
	err = util.Walk(w.fs, w.root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			fmt.Fprintf(w.log, "warning: cannot access %s: %v\n", path, err)
			return nil
		}
		if path != w.root && skipped(ignore, path, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !isCandidate(info.Name()) {
			return nil
		}
		w.visit(path, info, &res)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("walking %s: %w", w.root, err)
	}
	return res, nil
}

func (w *Walker) visit(path string, info os.FileInfo, res *Result) {
	folder := filepath.Dir(path)
	res.Stats.addFolder(folder)
	res.Stats.Images++

	rec := types.ImageRecord{
		Path:    path,
		Folder:  folder,
		Status:  types.PromptMissing,
		ModTime: info.ModTime(),
	}

	meta := w.reader.Read(path)
	switch {
	case meta.Err != nil:
		rec.Status = types.PromptFailed
		rec.Error = meta.Err.Error()
		res.Stats.Failed++
	case meta.Found:
		if prompt, ok := sanitize.Prompt(meta.Text, w.cfg.RemoveNewlines); ok {
			rec.Status = types.PromptExtracted
			rec.Prompt = prompt
		}
	}

	if !rec.HasPrompt() {
		res.Stats.Missing++
		res.Records = append(res.Records, rec)
		return
	}

	res.Stats.Prompts++
	res.Prompts = append(res.Prompts, rec.Prompt)

	if w.cfg.SaveIndividualFiles && w.sidecars != nil {
		sidecar, err := w.sidecars.WriteSidecar(path, rec.Prompt)
		if err != nil {
			fmt.Fprintf(w.log, "Error writing %s: %v\n", sidecar, err)
			res.Stats.SidecarsFailed++
		} else {
			rec.Sidecar = sidecar
			res.Stats.SidecarsWritten++
		}
	}
	res.Records = append(res.Records, rec)
}

func isCandidate(name string) bool {
	return strings.EqualFold(filepath.Ext(name), imageExt)
}

func skipped(ignore gitignore.IgnoreMatcher, path string, isDir bool) bool {
	return ignore != nil && ignore.Match(path, isDir)
}
