// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report prints scan progress and summaries to the console.
package report

import (
	"fmt"
	"io"

	"github.com/pdiddy/prompt-extract/internal/scan"
)

// Outputs describes which outputs were produced by a run.
type Outputs struct {
	// Concatenated reports whether the concatenated file mode was enabled.
	Concatenated bool
	OutputFile   string
	Lines        int

	// Individual reports whether sidecar mode was enabled.
	Individual bool
	Sidecars   int
}

// Scanning prints the progress header for root.
func Scanning(w io.Writer, root string) {
	fmt.Fprintf(w, "Scanning for images in '%s'...\n", root)
}

// Summary prints the scan statistics. Folders are listed in lexical order.
func Summary(w io.Writer, stats scan.Statistics) {
	fmt.Fprintln(w, "\n--- Scan Complete ---")
	fmt.Fprintf(w, "Folders scanned: %d\n", stats.FolderCount())
	for _, folder := range stats.Folders() {
		fmt.Fprintf(w, " - %s\n", folder)
	}
	fmt.Fprintf(w, "Total images found: %d\n", stats.Images)
	fmt.Fprintf(w, "Prompts found: %d\n", stats.Prompts)
	fmt.Fprintf(w, "Images without prompts: %d\n", stats.Missing)
	if stats.Failed > 0 {
		fmt.Fprintf(w, "Images that could not be read: %d\n", stats.Failed)
	}
	fmt.Fprintln(w, "---------------------")
	fmt.Fprintln(w)
}

// Written prints how many files each enabled output mode produced.
func Written(w io.Writer, o Outputs) {
	if o.Concatenated {
		fmt.Fprintf(w, "Saved %d prompts to %s\n", o.Lines, o.OutputFile)
	}
	if o.Individual {
		fmt.Fprintf(w, "Saved %d individual prompt files.\n", o.Sidecars)
	}
}

// NothingWritten prints the notice for a run with every output mode disabled.
func NothingWritten(w io.Writer) {
	fmt.Fprintln(w, "No output files were saved (check configuration).")
}
