package summary

import (
	"strings"

	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/parser"
)

// renderCategories emits one "## <title>" section per category, each
// followed by its entries and a single blank line.
func renderCategories(cats []models.Category) []string {
	var out []string
	for _, c := range cats {
		out = append(out, "## "+c.Title)
		for _, e := range c.Entries {
			out = append(out, entryLine(e))
		}
		out = append(out, "")
	}
	return out
}

// entryLine renders a document link. Links inside the title are reduced to
// their text so the only link target on the line is the document itself.
func entryLine(d models.Document) string {
	title := strings.TrimSpace(parser.PlainText(d.Title))
	if title == "" {
		title = d.Path
	}
	return "* [" + title + "](" + d.Path + ")"
}

// finish trims trailing blank lines and terminates the text with exactly
// one newline.
func finish(lines []string) string {
	return finishWith(lines, "\n")
}

func finishWith(lines []string, eol string) string {
	return strings.Join(trimTrailingBlank(lines), eol) + eol
}
