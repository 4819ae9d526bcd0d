//go:build mage

// Package main contains Mage build targets for prompt-extract developer tooling.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "prompt-extract"
	cmdPkg  = "./cmd/prompt-extract"

	inputDir   = "input"
	configFile = "prompt-extract.yaml"
	ignoreFile = ".promptignore"
)

// binPath is the CLI binary produced by Build.
var binPath = filepath.Join(binDir, binName)

// starterConfig mirrors the CLI defaults so they can be edited in place.
const starterConfig = `input_dir: input
output_file: prompts.txt
save_individual_files: true
concatenate_prompts: true
remove_newlines: true
strip_empty_lines: true
metadata_key: parameters
ignore_file: .promptignore
# manifest: manifest.yaml
# index: prompts.db
`

const starterIgnore = `# Paths under input/ to skip, gitignore syntax.
# rejects/
# *_grid.png
`

// Init creates input/ and starter config and ignore files. Existing files are
// left alone.
func Init() error {
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", inputDir, err)
	}
	fmt.Println("  ", inputDir)

	starters := []struct {
		path, content string
	}{
		{configFile, starterConfig},
		{filepath.Join(inputDir, ignoreFile), starterIgnore},
	}
	for _, s := range starters {
		if _, err := os.Stat(s.path); err == nil {
			fmt.Println("   kept", s.path)
			continue
		}
		if err := os.WriteFile(s.path, []byte(s.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", s.path, err)
		}
		fmt.Println("  ", s.path)
	}
	fmt.Println("Drop PNG files into input/ and run mage extract.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+buildVersion(), "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// buildVersion reads the version from VERSION, falling back to "dev".
func buildVersion() string {
	data, err := os.ReadFile("VERSION")
	if err != nil {
		return "dev"
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return "dev"
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// packageLines counts non-blank Go lines in one package directory.
type packageLines struct {
	prod, test int
}

// Stats prints non-blank Go lines per package, split into production and test
// code, for cmd/, internal/ and pkg/.
func Stats() error {
	counts := make(map[string]*packageLines)
	for _, root := range []string{"cmd", "internal", "pkg"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".go" {
				return nil
			}
			n, err := nonBlankLines(path)
			if err != nil {
				return err
			}
			pkg := filepath.Dir(path)
			if counts[pkg] == nil {
				counts[pkg] = &packageLines{}
			}
			if strings.HasSuffix(path, "_test.go") {
				counts[pkg].test += n
			} else {
				counts[pkg].prod += n
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	pkgs := make([]string, 0, len(counts))
	for pkg := range counts {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var total packageLines
	fmt.Printf("%-28s %8s %8s\n", "Package", "Prod", "Test")
	for _, pkg := range pkgs {
		c := counts[pkg]
		fmt.Printf("%-28s %8d %8d\n", pkg, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-28s %8d %8d\n", "total", total.prod, total.test)
	return nil
}

func nonBlankLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n, nil
}
