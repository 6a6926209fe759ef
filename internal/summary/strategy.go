// Package summary keeps a markdown summary index in step with the documents
// on disk.
//
// Two reconciliation strategies are available. Rebuild regenerates every
// section, preserving the hand-authored preamble minus entries whose target
// has been deleted; it prunes stale entries and reorders sections. Append
// only adds sections for documents the index does not link yet; it never
// prunes, reorders or removes existing lines.
package summary

import "fmt"

// Mode names a reconciliation strategy.
type Mode string

const (
	ModeRebuild Mode = "rebuild"
	ModeAppend  Mode = "append"
)

// Index is the current on-disk index.
type Index struct {
	Content string
	Present bool
}

// Snapshot is the tree state a strategy reconciles the index against.
type Snapshot struct {
	// Files are the discovered documents, sorted.
	Files []string
	// Title resolves a document's display title.
	Title func(path string) string
	// Exists reports whether a root-relative path exists.
	Exists func(path string) bool
	// Policy groups and orders documents.
	Policy Policy
	// Preamble seeds a missing index.
	Preamble []string
}

// Strategy turns the current index and a snapshot into new index text.
// changed is false when the text on disk is already what the strategy wants.
type Strategy interface {
	Mode() Mode
	Reconcile(idx Index, snap Snapshot) (text string, changed bool)
}

// StrategyFor returns the strategy implementing mode.
func StrategyFor(mode Mode) (Strategy, error) {
	switch mode {
	case ModeRebuild:
		return Rebuild{}, nil
	case ModeAppend:
		return Append{}, nil
	default:
		return nil, fmt.Errorf("summary: unknown mode %q", mode)
	}
}

// DefaultPreamble is the content seeded into a missing index.
func DefaultPreamble(title, introTitle, introPath string) []string {
	lines := []string{"# " + title}
	if introPath != "" {
		lines = append(lines, "", "* ["+introTitle+"]("+introPath+")")
	}
	return lines
}

func (s Snapshot) startLines(idx Index) []string {
	if idx.Present {
		return splitLines(idx.Content)
	}
	return append([]string(nil), s.Preamble...)
}
