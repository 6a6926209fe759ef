// Package parser extracts titles and links from Markdown content and derives
// display names from file and folder names.
package parser

import (
	"bytes"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	headingRe      = regexp.MustCompile(`(?m)^#[ \t]+(\S.*)$`)
	linkRe         = regexp.MustCompile(`\[.*?\]\(([^)]+\.md)\)`)
	inlineLinkRe   = regexp.MustCompile(`!?\[([^\[\]]*)\]\([^()]*\)`)
	categoryPrefix = regexp.MustCompile(`^\d{2}[-_]`)
	separators     = strings.NewReplacer("-", " ", "_", " ")
)

// HeadingTitle returns the trimmed text of the first level-1 heading in data,
// or "" when there is none. A leading YAML frontmatter block is skipped.
func HeadingTitle(data []byte) string {
	m := headingRe.FindSubmatch(stripFrontmatter(data))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m[1]))
}

// FallbackTitle derives a title from a file name: extension dropped,
// separators turned into spaces, each word capitalised.
func FallbackTitle(p, ext string) string {
	base := strings.TrimSuffix(path.Base(p), ext)
	return Humanize(base)
}

// CategoryTitle derives a section title from a folder name, dropping a
// leading two-digit ordering prefix such as "01-".
func CategoryTitle(folder string) string {
	trimmed := categoryPrefix.ReplaceAllString(folder, "")
	if trimmed == "" {
		trimmed = folder
	}
	return Humanize(trimmed)
}

// Humanize replaces '-' and '_' with spaces and upper-cases the first letter
// of every word. The rest of each word is left untouched.
func Humanize(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(separators.Replace(s))
}

// Links returns the targets of every [text](target.md) link in s, in order.
func Links(s string) []string {
	matches := linkRe.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// PlainText reduces inline links and images in s to their text, so the
// result can be embedded in another link.
func PlainText(s string) string {
	for {
		out := inlineLinkRe.ReplaceAllString(s, "$1")
		if out == s {
			return out
		}
		s = out
	}
}

// IsEntryLine reports whether line links at least one markdown file.
func IsEntryLine(line string) bool {
	return linkRe.MatchString(line)
}

// IsExternal reports whether a link target points outside the local tree.
func IsExternal(target string) bool {
	return strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:")
}

// NumericPrefix returns the leading decimal digits of name, or "".
func NumericPrefix(name string) string {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	return name[:i]
}

// stripFrontmatter removes a leading YAML frontmatter block (between ---
// delimiters). Content without a well-formed block is returned unchanged.
func stripFrontmatter(data []byte) []byte {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return data
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return data
	}

	yamlBlock := rest[:idx]
	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil || len(fm) == 0 {
		// Not frontmatter after all (e.g. thematic breaks around a heading).
		return data
	}

	return rest[idx+1+len(delim):]
}
