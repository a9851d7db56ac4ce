package config

import (
	"time"

	"github.com/Devon-White/aria2-options/internal/options"
)

// Default paths used when no flags are given.
const (
	DefaultInput  = "aria-docs.md"
	DefaultOutput = "src/lib/aria2-options.json"

	// DefaultBaseURL is where the manual is published. Relative links in a
	// local HTML copy resolve against it.
	DefaultBaseURL = "https://aria2.github.io/manual/en/html/aria2c.html"
)

// Config holds all CLI options for an extraction run.
type Config struct {
	Input           string // local source document
	Output          string // JSON output path
	URL             string // fetch the source from here instead of Input
	HTML            bool   // force HTML-to-Markdown conversion of the source
	Selector        string // CSS selector for the manual's content; empty = heuristic
	BaseURL         string // resolves relative links when the source is a local file
	SaveMarkdown    string // also write the source Markdown here; empty = skip
	PermalinkPrefix string
	MaxDescription  int
	UserAgent       string
	Timeout         time.Duration
	Verbose         bool
}

// Default returns the configuration of a run without flags.
func Default() Config {
	return Config{
		Input:           DefaultInput,
		Output:          DefaultOutput,
		BaseURL:         DefaultBaseURL,
		PermalinkPrefix: options.DefaultPermalinkPrefix,
		MaxDescription:  options.DefaultMaxDescription,
		UserAgent:       "aria2-options/1.0",
		Timeout:         30 * time.Second,
	}
}
