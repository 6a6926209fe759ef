package summary

import (
	"path"
	"regexp"
	"strings"

	"github.com/starford/docindex/internal/parser"
)

var (
	// Hand-numbered section headings ("## 01 ...") always open the generated body.
	markerRe   = regexp.MustCompile(`^##[ \t]+\d{2}`)
	level2Re   = regexp.MustCompile(`^##[ \t]+\S`)
	headingRe  = regexp.MustCompile(`^#{1,6}[ \t]`)
	listItemRe = regexp.MustCompile(`^[ \t]*[*-][ \t]+\[`)
)

// splitLines splits index text into lines, dropping CR from CRLF endings.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// sectionBoundary returns the index of the first line of the generated body,
// or len(lines) when the whole text is preamble.
//
// A level-2 heading opens the generated body when it starts with a two-digit
// numeral, or when its section holds nothing but markdown link entries and
// blank lines (which is exactly what this tool emits).
func sectionBoundary(lines []string) int {
	for i, l := range lines {
		if !level2Re.MatchString(l) {
			continue
		}
		if markerRe.MatchString(l) || isGeneratedSection(lines[i+1:]) {
			return i
		}
	}
	return len(lines)
}

func isGeneratedSection(rest []string) bool {
	entries := 0
	for _, l := range rest {
		if headingRe.MatchString(l) {
			break
		}
		if isBlank(l) {
			continue
		}
		if !listItemRe.MatchString(l) || !parser.IsEntryLine(l) {
			return false
		}
		entries++
	}
	return entries > 0
}

// extractPreamble returns the hand-authored part of an index with stale
// entry lines removed, blank runs collapsed and trailing blanks trimmed.
func extractPreamble(lines []string, exists func(string) bool) []string {
	end := sectionBoundary(lines)
	kept := make([]string, 0, end)
	for _, l := range lines[:end] {
		if isStale(l, exists) {
			continue
		}
		kept = append(kept, l)
	}
	return trimTrailingBlank(collapseBlank(kept))
}

// isStale reports whether any local markdown link on line points at a
// file that no longer exists.
func isStale(line string, exists func(string) bool) bool {
	for _, target := range parser.Links(line) {
		if parser.IsExternal(target) {
			continue
		}
		if !exists(path.Clean(target)) {
			return true
		}
	}
	return false
}

func collapseBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, l := range lines {
		blank := isBlank(l)
		if blank && prevBlank {
			continue
		}
		if blank {
			l = ""
		}
		out = append(out, l)
		prevBlank = blank
	}
	return out
}

func trimTrailingBlank(lines []string) []string {
	n := len(lines)
	for n > 0 && isBlank(lines[n-1]) {
		n--
	}
	return lines[:n]
}

func isBlank(l string) bool {
	return strings.TrimSpace(l) == ""
}
