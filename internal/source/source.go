// Package source loads the aria2 manual as Markdown, either from a local file
// or over HTTP, converting HTML renderings on the way.
package source

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Devon-White/aria2-options/internal/config"
	"github.com/Devon-White/aria2-options/internal/converter"
	"github.com/Devon-White/aria2-options/internal/extractor"
	"github.com/Devon-White/aria2-options/internal/fetcher"
)

// Load returns the Markdown source described by cfg. Markdown is returned
// exactly as read; HTML goes through content extraction and conversion.
func Load(ctx context.Context, cfg *config.Config) (string, error) {
	var (
		name   string
		body   []byte
		isHTML bool
	)

	if cfg.URL != "" {
		name = cfg.URL
		if cfg.Verbose {
			log.Printf("Fetching %s", name)
		}
		resp, err := fetcher.New(cfg.UserAgent, cfg.Timeout).Fetch(ctx, cfg.URL)
		if err != nil {
			return "", err
		}
		body = resp.Body
		isHTML = resp.IsHTML()
	} else {
		name = cfg.Input
		if cfg.Verbose {
			log.Printf("Reading %s", name)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		body = data
	}

	if !(cfg.HTML || isHTML || hasHTMLExt(name)) {
		return string(body), nil
	}

	if cfg.Verbose {
		log.Printf("Converting HTML from %s (%d bytes)", name, len(body))
	}

	base := cfg.URL
	if base == "" {
		base = cfg.BaseURL
	}

	html, err := extractor.Extract(body, cfg.Selector, base)
	if err != nil {
		return "", fmt.Errorf("extracting content from %s: %w", name, err)
	}

	md, err := converter.ConvertHTML(html, base)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", name, err)
	}
	return md, nil
}

// IsLocalMarkdown reports whether cfg names a local file that is read as
// Markdown without conversion.
func IsLocalMarkdown(cfg *config.Config) bool {
	return cfg.URL == "" && !cfg.HTML && !hasHTMLExt(cfg.Input)
}

func hasHTMLExt(name string) bool {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm")
}
