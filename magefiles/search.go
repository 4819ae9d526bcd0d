//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search queries prompts.db for the terms in the QUERY environment variable.
// Run mage index first.
func Search() error {
	mg.Deps(Build)
	query := strings.Fields(os.Getenv("QUERY"))
	if len(query) == 0 {
		return fmt.Errorf("set QUERY to the search terms")
	}
	args := append([]string{"search", "--index", "prompts.db"}, query...)
	return sh.RunV(binPath, args...)
}
