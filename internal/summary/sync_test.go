package summary

import (
	"bytes"
	"context"
	"errors"
	"os"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/storage"
	"github.com/starford/docindex/internal/testutil"
)

func testOptions(strategy Strategy) Options {
	return Options{
		IndexFile: "SUMMARY.md",
		Extension: ".md",
		Exclusions: models.NewExclusionSet(
			[]string{"README.md", "SUMMARY.md"},
			[]string{".git", "node_modules", "_book", ".github", "scripts"},
			".",
		),
		Policy:   DefaultPolicy(),
		Preamble: DefaultPreamble("Summary", "Introduction", "README.md"),
		Strategy: strategy,
	}
}

func TestRun_GuideScenario(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{
		"README.md":         "# Project\n",
		"guide/intro.md":    "Some words.\n# Getting Started\n",
		"guide/advanced.md": "no heading here\n",
	})
	s := NewSynchronizer(store, testOptions(Rebuild{}), testutil.Logger())

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Changed || res.Files != 2 {
		t.Errorf("result = %+v", res)
	}

	got := testutil.ReadFile(t, root, "SUMMARY.md")
	want := "# Summary\n\n* [Introduction](README.md)\n\n" +
		"## Guide\n" +
		"* [Advanced](guide/advanced.md)\n" +
		"* [Getting Started](guide/intro.md)\n"
	if got != want {
		t.Errorf("SUMMARY.md =\n%s\nwant\n%s", got, want)
	}
	if res.Lines != strings.Count(want, "\n") {
		t.Errorf("lines = %d", res.Lines)
	}
}

func TestRun_RebuildIdempotentOnDisk(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{
		"README.md":     "",
		"01-intro/a.md": "# A\n",
		"guide/b.md":    "# B\n",
		"top.md":        "",
		"SUMMARY.md":    "# Summary\n\nHand-written note.\n\n\n* [Introduction](README.md)\n",
	})
	s := NewSynchronizer(store, testOptions(Rebuild{}), testutil.Logger())

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := testutil.ReadFile(t, root, "SUMMARY.md")

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.Changed {
		t.Error("second run should report no change")
	}
	if second := testutil.ReadFile(t, root, "SUMMARY.md"); second != first {
		t.Errorf("second run changed the file:\n%s\n---\n%s", first, second)
	}

	intro := strings.Index(first, "## Intro")
	guide := strings.Index(first, "## Guide")
	if intro < 0 || guide < 0 || intro > guide {
		t.Errorf("expected Intro before Guide:\n%s", first)
	}
}

func TestRun_DeletedFileLeavesNoTrace(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{
		"README.md":      "",
		"old/removed.md": "# Removed\n",
		"guide/a.md":     "# A\n",
	})
	s := NewSynchronizer(store, testOptions(Rebuild{}), testutil.Logger())
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(testutil.ReadFile(t, root, "SUMMARY.md"), "old/removed.md") {
		t.Fatal("precondition: old/removed.md should be indexed")
	}

	if err := os.Remove(filepath.Join(root, "old", "removed.md")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := testutil.ReadFile(t, root, "SUMMARY.md")
	if strings.Contains(got, "old/removed.md") || strings.Contains(got, "## Old") {
		t.Errorf("deleted document still referenced:\n%s", got)
	}
}

func TestRun_AppendMode(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{
		"SUMMARY.md": "# Summary\n\n## Guide\n* [Kept](guide/a.md)\n* [Gone](gone/x.md)\n",
		"guide/a.md": "# A\n",
		"guide/b.md": "# B\n",
	})
	s := NewSynchronizer(store, testOptions(Append{}), testutil.Logger())

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Changed || res.Mode != ModeAppend {
		t.Errorf("result = %+v", res)
	}
	got := testutil.ReadFile(t, root, "SUMMARY.md")
	want := "# Summary\n\n## Guide\n* [Kept](guide/a.md)\n* [Gone](gone/x.md)\n\n## Guide\n* [B](guide/b.md)\n"
	if got != want {
		t.Errorf("SUMMARY.md =\n%q\nwant\n%q", got, want)
	}

	res, err = s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Changed {
		t.Error("nothing new on the second run")
	}
}

func TestRun_AppendNoFilesNoWrite(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{"README.md": ""})
	s := NewSynchronizer(store, testOptions(Append{}), testutil.Logger())
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Changed {
		t.Error("no documents, no change")
	}
	if _, err := os.Stat(filepath.Join(root, "SUMMARY.md")); !os.IsNotExist(err) {
		t.Error("index should not have been created")
	}
}

func TestRun_UnreadableDocumentFallsBack(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{
		"guide/getting-started.md": "# Ignored\n",
	})
	s := NewSynchronizer(failingReads{Provider: store, path: "guide/getting-started.md"}, testOptions(Rebuild{}), testutil.Logger())
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := testutil.ReadFile(t, root, "SUMMARY.md")
	if !strings.Contains(got, "* [Getting Started](guide/getting-started.md)") {
		t.Errorf("fallback title missing:\n%s", got)
	}
}

func TestRun_WriteFailurePropagates(t *testing.T) {
	_, store := testutil.Tree(t, map[string]string{"a.md": ""})
	s := NewSynchronizer(failingWrites{Provider: store}, testOptions(Rebuild{}), testutil.Logger())
	res, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected write error")
	}
	if !errors.Is(err, errDiskFull) {
		t.Errorf("err = %v, want wrapped errDiskFull", err)
	}
	if res.Changed {
		t.Error("failed write must not report a change")
	}
}

func TestRun_CustomIndexExcludedFromItself(t *testing.T) {
	root, store := testutil.Tree(t, map[string]string{"a.md": ""})
	opts := testOptions(Rebuild{})
	opts.IndexFile = "TOC.md"
	opts.Exclusions = models.NewExclusionSet([]string{"TOC.md"}, nil, ".")
	s := NewSynchronizer(store, opts, testutil.Logger())
	for i := 0; i < 2; i++ {
		if _, err := s.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	if got := testutil.ReadFile(t, root, "TOC.md"); strings.Contains(got, "(TOC.md)") {
		t.Errorf("index links itself:\n%s", got)
	}
}

func TestRun_MissingIndexWarns(t *testing.T) {
	_, store := testutil.Tree(t, map[string]string{"a.md": ""})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := NewSynchronizer(store, testOptions(Rebuild{}), logger)
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(logs.String(), `level=WARN msg="sync: index not found`) {
		t.Errorf("expected warning for missing index, logs:\n%s", logs.String())
	}
}

type failingReads struct {
	storage.Provider
	path string
}

func (f failingReads) Read(p string) ([]byte, error) {
	if p == f.path {
		return nil, errors.New("permission denied")
	}
	return f.Provider.Read(p)
}

var errDiskFull = errors.New("disk full")

type failingWrites struct {
	storage.Provider
}

func (failingWrites) Write(string, []byte) error { return errDiskFull }
