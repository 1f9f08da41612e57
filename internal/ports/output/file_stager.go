package output

import (
	"io"
)

// FileStager interface - Output port
// Local staging area for uploaded content. Staged files are a finite shared
// resource and must be removed by the caller once handled.
type FileStager interface {
	// Stage copies content into a new staged file and returns its path.
	// ext is appended to the generated file name.
	Stage(content io.Reader, ext string) (string, error)

	// Remove deletes a staged file. Removing a missing file is not an error.
	Remove(path string) error
}
