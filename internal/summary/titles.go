package summary

import (
	"log/slog"
	"strings"

	"github.com/starford/docindex/internal/parser"
	"github.com/starford/docindex/internal/storage"
)

// TitleResolver derives display titles for documents. It never fails:
// unreadable files fall back to a title built from the file name.
type TitleResolver struct {
	store  storage.Provider
	ext    string
	logger *slog.Logger
}

// NewTitleResolver creates a TitleResolver reading through store.
func NewTitleResolver(store storage.Provider, ext string, logger *slog.Logger) *TitleResolver {
	return &TitleResolver{store: store, ext: ext, logger: logger}
}

// Resolve returns the first level-1 heading of the document at rel, or the
// file-name fallback. The result is never empty.
func (r *TitleResolver) Resolve(rel string) string {
	data, err := r.store.Read(rel)
	if err != nil {
		r.logger.Warn("titles: cannot read document",
			slog.String("path", rel),
			slog.String("error", err.Error()))
	} else if t := parser.HeadingTitle(data); t != "" {
		return t
	}

	if t := parser.FallbackTitle(rel, r.ext); strings.TrimSpace(t) != "" {
		return t
	}
	return rel
}
