package internal

import (
	"io"

	"github.com/starford/docindex/internal/summary"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logOutput io.Writer
	onRun     summary.RunCallback
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogOutput redirects log output (stderr by default).
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithRunCallback registers a function called after every successful
// synchronization, including the initial one.
func WithRunCallback(cb summary.RunCallback) Option {
	return func(a *application) {
		a.onRun = cb
	}
}
