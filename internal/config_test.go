package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/docindex/internal/summary"
	pkgconfig "github.com/starford/docindex/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestIndexConfig_InvalidMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Index.Mode = "merge"
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestIndexConfig_FileMustBeBareName(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Index.File = "docs/SUMMARY.md"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("nested index path should fail")
	}
	if !strings.Contains(err.Error(), "without directories") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIndexConfig_RootCategoryRequiredOnlyWhenUsed(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Index.Grouping.RootCategory = ""
	if err := cfg.Validate(); err == nil {
		t.Error("category policy without a name should fail")
	}
	cfg.Index.Grouping.RootFiles = string(summary.RootFilesOmit)
	if err := cfg.Validate(); err != nil {
		t.Errorf("omit policy needs no name: %v", err)
	}
}

func TestIndexConfig_InvalidOrder(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Index.Grouping.Order = "random"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown order should fail")
	}
}

func TestApplicationConfig_InvalidLogFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log format should fail")
	}
}

func TestWatchConfig_DebounceCheckedWhenEnabled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Watch.Debounce = time.Millisecond
	if err := cfg.Validate(); err != nil {
		t.Errorf("debounce ignored while disabled: %v", err)
	}
	cfg.Watch.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("tiny debounce should fail when watching")
	}
}

func TestIndexConfig_ExclusionSetAlwaysHasIndexFile(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Index.File = "TOC.md"
	cfg.Index.Exclude.Files = nil
	es := cfg.Index.ExclusionSet()
	if !es.SkipFile("TOC.md") {
		t.Error("index file must always be excluded")
	}
	if !es.SkipDir(".git") {
		t.Error("default dirs should be excluded")
	}
}

func TestIndexConfig_Policy(t *testing.T) {
	cfg := NewDefaultConfig()
	if _, ok := cfg.Index.Policy().Order.(summary.NumericOrder); !ok {
		t.Error("default order should be numeric")
	}
	cfg.Index.Grouping.Order = OrderName
	if _, ok := cfg.Index.Policy().Order.(summary.NameOrder); !ok {
		t.Error("name order not applied")
	}
}

func TestConfig_LoadFromYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "docindex.yaml")
	content := `app:
  log_level: debug
  log_format: json
index:
  mode: append
  exclude:
    dirs: [vendor]
  grouping:
    root_files: omit
watch:
  enabled: true
  debounce: 1s
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(p, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.LogLevel.String() != "DEBUG" || cfg.App.LogFormat != LogFormatJSON {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Index.Mode != "append" || cfg.Index.File != "SUMMARY.md" {
		t.Errorf("index = %+v", cfg.Index)
	}
	if len(cfg.Index.Exclude.Dirs) != 1 || cfg.Index.Exclude.Dirs[0] != "vendor" {
		t.Errorf("dirs = %v", cfg.Index.Exclude.Dirs)
	}
	if !cfg.Watch.Enabled || cfg.Watch.Debounce != time.Second {
		t.Errorf("watch = %+v", cfg.Watch)
	}
}
