// Package interfaces contains the boundary interfaces between the parsing
// core and its hosts.
package interfaces

import "context"

// ByteSource supplies complete DICOM file buffers to the importer. The core
// never performs partial or streaming reads: one call returns the whole
// file. Implementations may serve the local filesystem, object storage or
// anything else that can hand back a buffer per path.
type ByteSource interface {
	// List returns the candidate file paths under a directory-like location.
	List(ctx context.Context, dir string) ([]string, error)

	// ReadFile returns the complete contents of one file.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
