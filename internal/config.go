package internal

import (
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/summary"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Grouping orders.
const (
	OrderNumeric = "numeric"
	OrderName    = "name"
)

var (
	bareFileName = regexp.MustCompile(`^[^/\\]+$`)
	extensionRe  = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Index IndexConfig       `yaml:"index"`
	Watch WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.Required, validation.In(LogFormatText, LogFormatJSON)),
	)
}

// IndexConfig describes the documentation tree and the index kept for it.
type IndexConfig struct {
	Root      string         `yaml:"root"`
	File      string         `yaml:"file"`
	Extension string         `yaml:"extension"`
	Mode      string         `yaml:"mode"`
	Title     string         `yaml:"title"`
	Intro     IntroConfig    `yaml:"intro"`
	Exclude   ExcludeConfig  `yaml:"exclude"`
	Grouping  GroupingConfig `yaml:"grouping"`
}

// IntroConfig is the root link seeded into a new index. An empty Path
// seeds the title only.
type IntroConfig struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// ExcludeConfig lists what discovery skips. Any directory whose name starts
// with HiddenPrefix is skipped too; an empty prefix disables that rule.
type ExcludeConfig struct {
	Files        []string `yaml:"files"`
	Dirs         []string `yaml:"dirs"`
	HiddenPrefix string   `yaml:"hidden_prefix"`
}

// GroupingConfig controls how documents become index sections.
//
// RootFiles decides the fate of documents directly under the root:
//   - "category" (default): listed under a section titled RootCategory.
//   - "omit": left out of the generated sections.
type GroupingConfig struct {
	Order        string `yaml:"order"`
	RootFiles    string `yaml:"root_files"`
	RootCategory string `yaml:"root_category"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.File, validation.Required, validation.Match(bareFileName).Error("must be a file name without directories")),
		validation.Field(&c.Extension, validation.Required, validation.Match(extensionRe).Error("must look like .md")),
		validation.Field(&c.Mode, validation.Required, validation.In(string(summary.ModeRebuild), string(summary.ModeAppend))),
		validation.Field(&c.Title, validation.Required),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Grouping,
		validation.Field(&c.Grouping.Order, validation.Required, validation.In(OrderNumeric, OrderName)),
		validation.Field(&c.Grouping.RootFiles, validation.Required,
			validation.In(string(summary.RootFilesCategory), string(summary.RootFilesOmit))),
		validation.Field(&c.Grouping.RootCategory,
			validation.When(c.Grouping.RootFiles == string(summary.RootFilesCategory), validation.Required)),
	)
}

// ExclusionSet builds the discovery exclusions. The index file is always
// excluded, whatever the configured list says.
func (c *IndexConfig) ExclusionSet() models.ExclusionSet {
	files := append([]string{c.File}, c.Exclude.Files...)
	return models.NewExclusionSet(files, c.Exclude.Dirs, c.Exclude.HiddenPrefix)
}

// Policy returns the grouping policy.
func (c *IndexConfig) Policy() summary.Policy {
	p := summary.Policy{
		Order:        summary.NumericOrder{},
		RootFiles:    summary.RootFiles(c.Grouping.RootFiles),
		RootCategory: c.Grouping.RootCategory,
	}
	if c.Grouping.Order == OrderName {
		p.Order = summary.NameOrder{}
	}
	return p
}

// Preamble returns the lines seeded into a missing index.
func (c *IndexConfig) Preamble() []string {
	return summary.DefaultPreamble(c.Title, c.Intro.Title, c.Intro.Path)
}

// WatchConfig holds watch-mode configuration.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.When(c.Enabled, validation.Required, validation.Min(10*time.Millisecond))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatText,
		},
		Index: IndexConfig{
			Root:      ".",
			File:      "SUMMARY.md",
			Extension: ".md",
			Mode:      string(summary.ModeRebuild),
			Title:     "Summary",
			Intro: IntroConfig{
				Title: "Introduction",
				Path:  "README.md",
			},
			Exclude: ExcludeConfig{
				Files:        []string{"README.md", "SUMMARY.md"},
				Dirs:         []string{".git", "node_modules", "_book", ".github", "scripts"},
				HiddenPrefix: ".",
			},
			Grouping: GroupingConfig{
				Order:        OrderNumeric,
				RootFiles:    string(summary.RootFilesCategory),
				RootCategory: summary.DefaultRootCategory,
			},
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}
