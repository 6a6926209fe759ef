package summary

import (
	"path"
	"strings"

	"github.com/starford/docindex/internal/parser"
)

// Append adds sections for documents the index does not link yet.
type Append struct{}

// Mode implements Strategy.
func (Append) Mode() Mode { return ModeAppend }

// Reconcile implements Strategy. Existing lines are kept byte for byte,
// line endings included; appended lines use the index's line ending.
func (Append) Reconcile(idx Index, snap Snapshot) (string, bool) {
	cats := snap.Policy.Group(Unlinked(idx, snap.Files), snap.Title)
	if len(cats) == 0 {
		return idx.Content, false
	}

	eol := lineEnding(idx.Content)
	var existing []string
	if idx.Present {
		existing = trimTrailingBlank(strings.Split(idx.Content, "\n"))
	} else {
		existing = trimTrailingBlank(snap.startLines(idx))
	}

	var b strings.Builder
	if n := len(existing); n > 0 {
		// Only the final line's terminator is re-emitted; CRs inside the
		// kept lines stay where they were.
		existing[n-1] = strings.TrimSuffix(existing[n-1], "\r")
		b.WriteString(strings.Join(existing, "\n"))
		b.WriteString(eol + eol)
	}
	b.WriteString(finishWith(renderCategories(cats), eol))
	return b.String(), true
}

// Unlinked returns the documents in files that idx does not link anywhere.
func Unlinked(idx Index, files []string) []string {
	linked := make(map[string]struct{})
	for _, target := range parser.Links(idx.Content) {
		linked[path.Clean(target)] = struct{}{}
	}
	var out []string
	for _, f := range files {
		if _, ok := linked[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

func lineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
