// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	gitignore "github.com/monochromegane/go-gitignore"
)

// loadIgnore reads a gitignore-style file from root. It returns nil when name
// is empty or the file does not exist. Patterns are matched relative to root.
func loadIgnore(fs billy.Filesystem, root, name string) (gitignore.IgnoreMatcher, error) {
	if name == "" {
		return nil, nil
	}
	path := filepath.Join(root, name)
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file %s: %w", path, err)
	}
	defer f.Close()

	return gitignore.NewGitIgnoreFromReader(root, f), nil
}
