// Package models defines the domain types for docindex.
package models

import "strings"

// Document is a markdown file paired with its display title.
// Path is relative to the scan root and always uses forward slashes.
type Document struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Category groups documents sharing the same top-level folder.
// Key is the folder name, or "" for files directly under the root.
type Category struct {
	Key     string     `json:"key"`
	Title   string     `json:"title"`
	Entries []Document `json:"entries"`
}

// ExclusionSet decides which files and directories discovery ignores.
// The zero value excludes nothing.
type ExclusionSet struct {
	files        map[string]struct{}
	dirs         map[string]struct{}
	hiddenPrefix string
}

// NewExclusionSet builds an ExclusionSet. An empty hiddenPrefix disables
// the hidden-directory rule.
func NewExclusionSet(files, dirs []string, hiddenPrefix string) ExclusionSet {
	es := ExclusionSet{
		files:        make(map[string]struct{}, len(files)),
		dirs:         make(map[string]struct{}, len(dirs)),
		hiddenPrefix: hiddenPrefix,
	}
	for _, f := range files {
		es.files[f] = struct{}{}
	}
	for _, d := range dirs {
		es.dirs[d] = struct{}{}
	}
	return es
}

// SkipDir reports whether discovery must not descend into a directory
// with the given base name.
func (es ExclusionSet) SkipDir(name string) bool {
	if es.hiddenPrefix != "" && strings.HasPrefix(name, es.hiddenPrefix) {
		return true
	}
	_, ok := es.dirs[name]
	return ok
}

// SkipFile reports whether a file with the given base name is excluded.
func (es ExclusionSet) SkipFile(name string) bool {
	_, ok := es.files[name]
	return ok
}
