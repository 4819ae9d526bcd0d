// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import "sort"

// Statistics holds the counters gathered during a walk.
type Statistics struct {
	folders map[string]struct{}

	// Images is the number of candidate .png files seen.
	Images int

	// Prompts is the number of images that yielded a non-empty prompt.
	Prompts int

	// Missing is the number of images without an extractable prompt,
	// including those that failed to open or decode.
	Missing int

	// Failed is the subset of Missing that could not be read at all.
	Failed int

	// SidecarsWritten is the number of sidecar files written.
	SidecarsWritten int

	// SidecarsFailed is the number of sidecar writes that failed.
	SidecarsFailed int
}

func (s *Statistics) addFolder(dir string) {
	if s.folders == nil {
		s.folders = make(map[string]struct{})
	}
	s.folders[dir] = struct{}{}
}

// FolderCount returns the number of distinct folders that held at least one
// candidate image.
func (s Statistics) FolderCount() int {
	return len(s.folders)
}

// Folders returns the processed folders in lexical order.
func (s Statistics) Folders() []string {
	out := make([]string, 0, len(s.folders))
	for dir := range s.folders {
		out = append(out, dir)
	}
	sort.Strings(out)
	return out
}
