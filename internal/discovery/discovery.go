// Package discovery enumerates the markdown documents under a root.
package discovery

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/storage"
)

// Discover walks the tree below the store root and returns every file ending
// in ext that is not excluded, sorted byte-wise and without duplicates.
//
// Excluded and hidden directories are never entered. A directory that cannot
// be listed is logged and skipped; the walk continues with the rest of the
// tree. The only error returned is ctx's.
func Discover(ctx context.Context, store storage.Provider, ex models.ExclusionSet, ext string, logger *slog.Logger) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	// Worklist of root-relative directories still to list.
	stack := []string{""}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := store.ReadDir(dir)
		if err != nil {
			logger.Warn("discovery: cannot scan directory",
				slog.String("path", displayDir(dir)),
				slog.String("error", err.Error()))
			continue
		}

		for _, e := range entries {
			name := e.Name()
			rel := path.Join(dir, name)

			if e.IsDir() {
				if ex.SkipDir(name) {
					continue
				}
				stack = append(stack, rel)
				continue
			}

			if !strings.HasSuffix(name, ext) || ex.SkipFile(name) {
				continue
			}
			if _, dup := seen[rel]; dup {
				continue
			}
			seen[rel] = struct{}{}
			out = append(out, rel)
		}
	}

	sort.Strings(out)
	logger.Debug("discovery: done", slog.Int("files", len(out)))
	return out, nil
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
