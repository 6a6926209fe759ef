// Package storage defines the documentation-tree file-system abstraction.
package storage

import "io/fs"

// Provider is the interface for file operations under the scan root.
// All paths are relative to the root and use forward slashes; "" is the root.
type Provider interface {
	// ReadDir lists the entries of dir.
	ReadDir(dir string) ([]fs.DirEntry, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write replaces the file at path with content.
	Write(path string, content []byte) error
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
}
