// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metadata

import (
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// Result is the outcome of looking up the prompt key in one image.
type Result struct {
	// Text is the raw value of the key. Empty when Found is false.
	Text string

	// Found reports whether the key was present.
	Found bool

	// Err is set when the file could not be opened or parsed.
	Err error
}

// Reader looks up a single text keyword in PNG files on a filesystem.
type Reader struct {
	fs  billy.Filesystem
	key string
	log io.Writer
}

// NewReader returns a Reader for key. Failures are reported to log as
// "Error processing <path>: <description>".
func NewReader(fs billy.Filesystem, key string, log io.Writer) *Reader {
	return &Reader{fs: fs, key: key, log: log}
}

// Read opens path, looks up the configured key and closes the file. It never
// returns an error to the caller: failures are logged and carried in
// Result.Err so the batch can continue.
func (r *Reader) Read(path string) Result {
	text, found, err := r.lookup(path)
	if err != nil {
		fmt.Fprintf(r.log, "Error processing %s: %v\n", path, err)
		return Result{Err: err}
	}
	return Result{Text: text, Found: found}
}

func (r *Reader) lookup(path string) (string, bool, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	chunks, err := ReadText(f)
	if err != nil {
		return "", false, err
	}
	v, ok := chunks[r.key]
	return v, ok, nil
}
