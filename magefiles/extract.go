//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts prompts from input/ using the local
// configuration (prompt-extract.yaml, .env, PROMPT_EXTRACT_* variables).
func Extract() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "extract")
}

// Index extracts prompts and syncs them into prompts.db for searching.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "extract", "--index", "prompts.db")
}
