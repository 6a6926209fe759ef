package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/docindex/internal/apperr"
	"github.com/starford/docindex/internal/checksum"
	"github.com/starford/docindex/internal/discovery"
	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/storage"
)

// Options configures a Synchronizer.
type Options struct {
	IndexFile  string
	Extension  string
	Exclusions models.ExclusionSet
	Policy     Policy
	Preamble   []string
	Strategy   Strategy
}

// Result describes one synchronization run.
type Result struct {
	Mode     Mode
	Files    int
	Changed  bool
	Lines    int
	Checksum string
}

// Synchronizer discovers documents and reconciles the index with them.
type Synchronizer struct {
	store  storage.Provider
	opts   Options
	titles *TitleResolver
	logger *slog.Logger
}

// NewSynchronizer creates a Synchronizer over store.
func NewSynchronizer(store storage.Provider, opts Options, logger *slog.Logger) *Synchronizer {
	if opts.Strategy == nil {
		opts.Strategy = Rebuild{}
	}
	return &Synchronizer{
		store:  store,
		opts:   opts,
		titles: NewTitleResolver(store, opts.Extension, logger),
		logger: logger,
	}
}

// Run performs one synchronization pass. Unreadable directories and
// documents only produce warnings; the returned error is either ctx's or a
// failure to write the index, in which case the index must be considered
// not updated.
func (s *Synchronizer) Run(ctx context.Context) (Result, error) {
	res := Result{Mode: s.opts.Strategy.Mode()}

	idx := s.loadIndex()

	files, err := discovery.Discover(ctx, s.store, s.opts.Exclusions, s.opts.Extension, s.logger)
	if err != nil {
		return res, err
	}
	res.Files = len(files)

	snap := Snapshot{
		Files:    files,
		Title:    s.titles.Resolve,
		Exists:   s.store.Exists,
		Policy:   s.opts.Policy,
		Preamble: s.opts.Preamble,
	}
	if s.opts.Strategy.Mode() == ModeAppend {
		s.logger.Info("sync: scanned",
			slog.Int("files", len(files)),
			slog.Int("new", len(Unlinked(idx, files))))
	}

	text, changed := s.opts.Strategy.Reconcile(idx, snap)
	res.Lines = strings.Count(text, "\n")
	res.Checksum = checksum.Short([]byte(text))

	if !changed {
		s.logger.Info("sync: index up to date",
			slog.String("path", s.opts.IndexFile),
			slog.String("mode", string(res.Mode)),
			slog.Int("files", res.Files))
		return res, nil
	}

	if err := s.store.Write(s.opts.IndexFile, []byte(text)); err != nil {
		return res, fmt.Errorf("sync: write %s: %w", s.opts.IndexFile, err)
	}
	res.Changed = true

	s.logger.Info("sync: index updated",
		slog.String("path", s.opts.IndexFile),
		slog.String("mode", string(res.Mode)),
		slog.Int("files", res.Files),
		slog.Int("lines", res.Lines),
		slog.String("checksum", res.Checksum))
	return res, nil
}

func (s *Synchronizer) loadIndex() Index {
	data, err := s.store.Read(s.opts.IndexFile)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("sync: index not found, starting from default preamble",
				slog.String("path", s.opts.IndexFile))
		} else {
			s.logger.Warn("sync: cannot read index",
				slog.String("path", s.opts.IndexFile),
				slog.String("error", err.Error()))
		}
		return Index{}
	}
	return Index{Content: string(data), Present: true}
}
